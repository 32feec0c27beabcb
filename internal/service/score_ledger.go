package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
	"github.com/yourusername/scorekeeper-api/internal/websocket"
)

// ScoreLedger записывает очки игроков по категориям
type ScoreLedger struct {
	gameRepo        repository.GameRepository
	participantRepo repository.ParticipantRepository
	categoryRepo    repository.CategoryRepository
	scoreRepo       repository.ScoreRepository
	events          EventPublisher
	logger          *log.Logger
}

// NewScoreLedger создает журнал очков
func NewScoreLedger(
	gameRepo repository.GameRepository,
	participantRepo repository.ParticipantRepository,
	categoryRepo repository.CategoryRepository,
	scoreRepo repository.ScoreRepository,
	events EventPublisher,
	logger *log.Logger,
) *ScoreLedger {
	return &ScoreLedger{
		gameRepo:        gameRepo,
		participantRepo: participantRepo,
		categoryRepo:    categoryRepo,
		scoreRepo:       scoreRepo,
		events:          events,
		logger:          logger.WithPrefix("ScoreLedger"),
	}
}

// UpsertScore записывает очки для тройки (игра, игрок, категория).
// Существующая строка обновляется целиком, иначе создаётся новая.
// Закрытая игра очков не принимает (ErrConflict), очки пишутся только участникам игры.
func (l *ScoreLedger) UpsertScore(ctx context.Context, gameID, playerID, categoryID uint, points int) (*entity.Score, error) {
	if gameID == 0 || playerID == 0 || categoryID == 0 {
		return nil, fmt.Errorf("%w: game, player and category ids are required", apperrors.ErrValidation)
	}

	game, err := l.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game #%d: %w", gameID, err)
	}
	if !game.IsOpen() {
		return nil, fmt.Errorf("%w: game #%d is finalized", apperrors.ErrConflict, gameID)
	}

	if _, err := l.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category #%d", apperrors.ErrValidation, categoryID)
		}
		return nil, fmt.Errorf("failed to get category #%d: %w", categoryID, err)
	}

	enrolled, err := l.participantRepo.Exists(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant #%d of game #%d: %w", playerID, gameID, err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: player #%d is not a participant of game #%d", apperrors.ErrValidation, playerID, gameID)
	}

	score, err := l.writeScore(ctx, gameID, playerID, categoryID, points)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("score recorded", "game_id", gameID, "player_id", playerID, "category_id", categoryID, "points", points)
	publish(l.events, gameID, websocket.SCORE_UPDATED, ScoreUpdatedEvent{
		GameID:     gameID,
		PlayerID:   playerID,
		CategoryID: categoryID,
		Points:     points,
	})
	return score, nil
}

func (l *ScoreLedger) writeScore(ctx context.Context, gameID, playerID, categoryID uint, points int) (*entity.Score, error) {
	existing, err := l.scoreRepo.FindByKey(ctx, gameID, playerID, categoryID)
	switch {
	case err == nil:
		return l.updatePoints(ctx, existing, points)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to look up score: %w", err)
	}

	score := &entity.Score{
		GameID:     gameID,
		PlayerID:   playerID,
		CategoryID: categoryID,
		Points:     points,
	}
	err = l.scoreRepo.Create(ctx, score)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	// Строку успели вставить между поиском и вставкой: обновляем её
	existing, err = l.scoreRepo.FindByKey(ctx, gameID, playerID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up score: %w", err)
	}
	return l.updatePoints(ctx, existing, points)
}

func (l *ScoreLedger) updatePoints(ctx context.Context, score *entity.Score, points int) (*entity.Score, error) {
	if err := l.scoreRepo.UpdatePoints(ctx, score.ID, points); err != nil {
		return nil, fmt.Errorf("failed to update score #%d: %w", score.ID, err)
	}
	score.Points = points
	return score, nil
}
