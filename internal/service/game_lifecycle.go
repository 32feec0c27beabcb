package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
	"github.com/yourusername/scorekeeper-api/internal/websocket"
)

// FinalizeResult описывает итог закрытия игры
type FinalizeResult struct {
	GameID   uint                `json:"game_id"`
	WinnerID *uint               `json:"winner_id"`
	Totals   entity.PlayerTotals `json:"totals"`
}

// GameLifecycle управляет переходами игры: создание, состав, финализация
type GameLifecycle struct {
	gameRepo        repository.GameRepository
	participantRepo repository.ParticipantRepository
	stats           *StatsAggregator
	cache           *ResultCache
	events          EventPublisher
	logger          *log.Logger
	now             func() time.Time
}

// NewGameLifecycle создает менеджер жизненного цикла игр
func NewGameLifecycle(
	gameRepo repository.GameRepository,
	participantRepo repository.ParticipantRepository,
	stats *StatsAggregator,
	cache *ResultCache,
	events EventPublisher,
	logger *log.Logger,
) *GameLifecycle {
	return &GameLifecycle{
		gameRepo:        gameRepo,
		participantRepo: participantRepo,
		stats:           stats,
		cache:           cache,
		events:          events,
		logger:          logger.WithPrefix("GameLifecycle"),
		now:             time.Now,
	}
}

// CreateGame создает открытую игру с текущей датой
func (m *GameLifecycle) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := &entity.Game{Date: m.now()}
	if err := m.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	m.logger.Info("game created", "game_id", game.ID)
	publish(m.events, 0, websocket.GAME_CREATED, game)
	return game, nil
}

// AddParticipants добавляет игроков в открытую игру.
// Аргументы проверяются до любой записи в хранилище.
func (m *GameLifecycle) AddParticipants(ctx context.Context, gameID uint, playerIDs []uint) error {
	if gameID == 0 {
		return fmt.Errorf("%w: game id is required", apperrors.ErrValidation)
	}
	if len(playerIDs) == 0 {
		return fmt.Errorf("%w: at least one player is required", apperrors.ErrValidation)
	}
	seen := make(map[uint]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if id == 0 {
			return fmt.Errorf("%w: player id must be positive", apperrors.ErrValidation)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: player #%d listed twice", apperrors.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	game, err := m.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game #%d: %w", gameID, err)
	}
	if !game.IsOpen() {
		return fmt.Errorf("%w: game #%d is finalized", apperrors.ErrConflict, gameID)
	}

	participants := make([]entity.Participant, len(playerIDs))
	for i, id := range playerIDs {
		participants[i] = entity.Participant{GameID: gameID, PlayerID: id, Winner: false}
	}
	if err := m.participantRepo.CreateBatch(ctx, participants); err != nil {
		return fmt.Errorf("failed to add participants to game #%d: %w", gameID, err)
	}

	m.logger.Info("participants added", "game_id", gameID, "count", len(playerIDs))
	publish(m.events, gameID, websocket.PARTICIPANTS_ADDED, ParticipantsAddedEvent{GameID: gameID, PlayerIDs: playerIDs})
	return nil
}

// FinalizeGame закрывает игру и отмечает победителя.
// Победитель есть, только если его сумма строго больше сумм остальных и больше нуля.
// Пометка победителя и перевод игры в закрытые выполняются одной транзакцией.
func (m *GameLifecycle) FinalizeGame(ctx context.Context, gameID uint) (*FinalizeResult, error) {
	if gameID == 0 {
		return nil, fmt.Errorf("%w: game id is required", apperrors.ErrValidation)
	}

	game, err := m.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game #%d: %w", gameID, err)
	}
	if !game.IsOpen() {
		return nil, fmt.Errorf("%w: game #%d is already finalized", apperrors.ErrConflict, gameID)
	}

	totals, err := m.stats.ComputeTotals(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var winnerID *uint
	if id, ok := entity.SelectWinner(totals); ok {
		winnerID = &id
	}

	if err := m.gameRepo.Finalize(ctx, gameID, winnerID); err != nil {
		return nil, fmt.Errorf("failed to finalize game #%d: %w", gameID, err)
	}
	m.cache.Invalidate(ctx)

	result := &FinalizeResult{GameID: gameID, WinnerID: winnerID, Totals: totals}
	if winnerID != nil {
		m.logger.Info("game finalized", "game_id", gameID, "winner_id", *winnerID, "points", totals.Of(*winnerID))
	} else {
		m.logger.Info("game finalized without winner", "game_id", gameID, "players", len(totals))
	}
	publish(m.events, gameID, websocket.GAME_FINALIZED, GameFinalizedEvent{GameID: gameID, WinnerID: winnerID, Totals: totals})
	return result, nil
}
