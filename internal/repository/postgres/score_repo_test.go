package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

func TestScoreRepo_FindCreateUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepo(db)
	ctx := context.Background()
	game := seedGame(t, db, time.Now(), false)

	_, err := repo.FindByKey(ctx, game.ID, 1, 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	score := &entity.Score{GameID: game.ID, PlayerID: 1, CategoryID: 1, Points: 12}
	require.NoError(t, repo.Create(ctx, score))
	require.NotZero(t, score.ID)

	require.NoError(t, repo.UpdatePoints(ctx, score.ID, 20))

	found, err := repo.FindByKey(ctx, game.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, score.ID, found.ID)
	assert.Equal(t, 20, found.Points)
}

func TestScoreRepo_UpdatePoints_Missing(t *testing.T) {
	repo := NewScoreRepo(newTestDB(t))

	err := repo.UpdatePoints(context.Background(), 123, 5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestScoreRepo_ListByGame(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepo(db)
	ctx := context.Background()
	g1 := seedGame(t, db, time.Now(), false)
	g2 := seedGame(t, db, time.Now(), false)

	require.NoError(t, repo.Create(ctx, &entity.Score{GameID: g1.ID, PlayerID: 2, CategoryID: 1, Points: 3}))
	require.NoError(t, repo.Create(ctx, &entity.Score{GameID: g1.ID, PlayerID: 1, CategoryID: 2, Points: 4}))
	require.NoError(t, repo.Create(ctx, &entity.Score{GameID: g2.ID, PlayerID: 1, CategoryID: 1, Points: 50}))

	scores, err := repo.ListByGame(ctx, g1.ID)

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, uint(1), scores[0].PlayerID)
	assert.Equal(t, uint(2), scores[1].PlayerID)
	assert.Equal(t, entity.PlayerTotals{1: 4, 2: 3}, entity.SumScores(scores))
}
