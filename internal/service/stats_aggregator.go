package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
)

// StatsAggregator считает суммы очков внутри игры и карьерную статистику игроков
type StatsAggregator struct {
	playerRepo  repository.PlayerRepository
	scoreRepo   repository.ScoreRepository
	statsRepo   repository.StatsRepository
	cache       *ResultCache
	fanOutLimit int
	logger      *log.Logger
}

// NewStatsAggregator создает агрегатор статистики.
// fanOutLimit ограничивает число одновременных запросов статистики (<= 0 без ограничения).
func NewStatsAggregator(
	playerRepo repository.PlayerRepository,
	scoreRepo repository.ScoreRepository,
	statsRepo repository.StatsRepository,
	cache *ResultCache,
	fanOutLimit int,
	logger *log.Logger,
) *StatsAggregator {
	return &StatsAggregator{
		playerRepo:  playerRepo,
		scoreRepo:   scoreRepo,
		statsRepo:   statsRepo,
		cache:       cache,
		fanOutLimit: fanOutLimit,
		logger:      logger.WithPrefix("StatsAggregator"),
	}
}

// ComputeTotals возвращает сумму очков каждого игрока в игре.
// Игроки без записей очков в результат не попадают.
func (s *StatsAggregator) ComputeTotals(ctx context.Context, gameID uint) (entity.PlayerTotals, error) {
	scores, err := s.scoreRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores of game #%d: %w", gameID, err)
	}
	return entity.SumScores(scores), nil
}

// ComputePlayerCareerStats возвращает статистику игрока по финализированным играм.
// Ошибка процедуры не прерывает работу: возвращаются нули с StatsUnavailable = true.
func (s *StatsAggregator) ComputePlayerCareerStats(ctx context.Context, playerID uint) entity.CareerStats {
	cached, gen, hit := s.cache.getCareerStats(ctx, playerID)
	if hit {
		return cached
	}

	row, err := s.statsRepo.GetPlayerStatistics(ctx, playerID)
	if err != nil {
		s.logger.Warn("player statistics unavailable, using zero stats", "player_id", playerID, "err", err)
		return entity.UnavailableCareerStats()
	}

	// Долю побед пересчитываем из счётчиков, чтобы не зависеть от округления в процедуре
	stats := entity.NewCareerStats(row.TotalGames, row.TotalWins)
	s.cache.putCareerStats(ctx, gen, playerID, stats)
	return stats
}

// ListPlayersWithStats возвращает игроков по алфавиту вместе со статистикой.
// Статистика запрашивается параллельно, порядок результата совпадает с порядком игроков.
func (s *StatsAggregator) ListPlayersWithStats(ctx context.Context) ([]entity.PlayerWithStats, error) {
	players, err := s.playerRepo.ListOrderedByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	result := make([]entity.PlayerWithStats, len(players))
	g, gctx := errgroup.WithContext(ctx)
	if s.fanOutLimit > 0 {
		g.SetLimit(s.fanOutLimit)
	}
	for i, player := range players {
		g.Go(func() error {
			result[i] = entity.PlayerWithStats{
				Player: player,
				Stats:  s.ComputePlayerCareerStats(gctx, player.ID),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
