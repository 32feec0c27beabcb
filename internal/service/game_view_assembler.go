package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
)

// GameViewAssembler собирает представления игр для отображения
type GameViewAssembler struct {
	gameRepo        repository.GameRepository
	participantRepo repository.ParticipantRepository
	scoreRepo       repository.ScoreRepository
	stats           *StatsAggregator
	cache           *ResultCache
	fanOutLimit     int
	logger          *log.Logger
}

// NewGameViewAssembler создает сборщик представлений игр
func NewGameViewAssembler(
	gameRepo repository.GameRepository,
	participantRepo repository.ParticipantRepository,
	scoreRepo repository.ScoreRepository,
	stats *StatsAggregator,
	cache *ResultCache,
	fanOutLimit int,
	logger *log.Logger,
) *GameViewAssembler {
	return &GameViewAssembler{
		gameRepo:        gameRepo,
		participantRepo: participantRepo,
		scoreRepo:       scoreRepo,
		stats:           stats,
		cache:           cache,
		fanOutLimit:     fanOutLimit,
		logger:          logger.WithPrefix("GameViewAssembler"),
	}
}

// ComposeGameViews возвращает финализированные игры (новые первыми) с участниками и суммами.
// Игры собираются параллельно, порядок результата совпадает с порядком игр.
func (a *GameViewAssembler) ComposeGameViews(ctx context.Context) ([]entity.GameView, error) {
	cached, gen, hit := a.cache.getFinalizedViews(ctx)
	if hit {
		return cached, nil
	}

	games, err := a.gameRepo.ListFinalized(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized games: %w", err)
	}

	views := make([]entity.GameView, len(games))
	g, gctx := errgroup.WithContext(ctx)
	if a.fanOutLimit > 0 {
		g.SetLimit(a.fanOutLimit)
	}
	for i, game := range games {
		g.Go(func() error {
			participants, totals, err := a.loadGame(gctx, game.ID)
			if err != nil {
				return err
			}
			views[i] = entity.GameView{
				Game:         game,
				Participants: entity.BuildParticipantViews(game.ID, participants, totals),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.cache.putFinalizedViews(ctx, gen, views)
	a.logger.Debug("finalized game views assembled", "games", len(views))
	return views, nil
}

// GetScoreboard возвращает текущее табло одной игры, открытой или закрытой
func (a *GameViewAssembler) GetScoreboard(ctx context.Context, gameID uint) (*entity.Scoreboard, error) {
	game, err := a.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game #%d: %w", gameID, err)
	}

	var (
		participants []entity.ParticipantWithName
		scores       []entity.Score
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = a.participantRepo.ListByGameWithNames(gctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to list participants of game #%d: %w", gameID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = a.scoreRepo.ListByGame(gctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to list scores of game #%d: %w", gameID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := entity.SumScores(scores)
	return &entity.Scoreboard{
		Game:         *game,
		Participants: entity.BuildParticipantViews(gameID, participants, totals),
		Scores:       scores,
		Totals:       totals,
	}, nil
}

// loadGame параллельно загружает участников и суммы очков одной игры
func (a *GameViewAssembler) loadGame(ctx context.Context, gameID uint) ([]entity.ParticipantWithName, entity.PlayerTotals, error) {
	var (
		participants []entity.ParticipantWithName
		totals       entity.PlayerTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = a.participantRepo.ListByGameWithNames(gctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to list participants of game #%d: %w", gameID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = a.stats.ComputeTotals(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return participants, totals, nil
}
