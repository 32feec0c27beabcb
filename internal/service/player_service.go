package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// PlayerService управляет списком игроков
type PlayerService struct {
	playerRepo repository.PlayerRepository
	stats      *StatsAggregator
	cache      *ResultCache
	logger     *log.Logger
}

// NewPlayerService создает сервис игроков
func NewPlayerService(
	playerRepo repository.PlayerRepository,
	stats *StatsAggregator,
	cache *ResultCache,
	logger *log.Logger,
) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		stats:      stats,
		cache:      cache,
		logger:     logger.WithPrefix("PlayerService"),
	}
}

// ListPlayers возвращает игроков по алфавиту вместе с карьерной статистикой
func (s *PlayerService) ListPlayers(ctx context.Context) ([]entity.PlayerWithStats, error) {
	return s.stats.ListPlayersWithStats(ctx)
}

// AddPlayer создает игрока. Имя обрезается по краям, повтор имени даёт ErrConflict.
func (s *PlayerService) AddPlayer(ctx context.Context, name string) (*entity.Player, error) {
	name = entity.NormalizePlayerName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > entity.MaxPlayerNameLength {
		return nil, fmt.Errorf("%w: player name exceeds %d characters", apperrors.ErrValidation, entity.MaxPlayerNameLength)
	}

	player := &entity.Player{Name: name}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player %q: %w", name, err)
	}
	s.logger.Info("player added", "player_id", player.ID, "name", player.Name)
	return player, nil
}

// RemovePlayer удаляет игрока вместе с его участиями и очками
func (s *PlayerService) RemovePlayer(ctx context.Context, playerID uint) error {
	if playerID == 0 {
		return fmt.Errorf("%w: player id is required", apperrors.ErrValidation)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("failed to remove player #%d: %w", playerID, err)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("player removed", "player_id", playerID)
	return nil
}
