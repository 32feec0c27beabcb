package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

func newTestPlayerService(players *MockPlayerRepo, cache *ResultCache) *PlayerService {
	stats := NewStatsAggregator(players, new(MockScoreRepo), new(MockStatsRepo), cache, 2, testLogger())
	return NewPlayerService(players, stats, cache, testLogger())
}

func TestPlayerService_AddPlayer_TrimsName(t *testing.T) {
	players := new(MockPlayerRepo)
	players.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Player) bool {
		return p.Name == "Marta"
	})).Return(nil)

	player, err := newTestPlayerService(players, nil).AddPlayer(context.Background(), "  Marta \t")

	require.NoError(t, err)
	assert.Equal(t, "Marta", player.Name)
}

func TestPlayerService_AddPlayer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only spaces", input: "   "},
		{name: "too long", input: strings.Repeat("ж", entity.MaxPlayerNameLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := new(MockPlayerRepo)

			_, err := newTestPlayerService(players, nil).AddPlayer(context.Background(), tt.input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			players.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPlayerService_AddPlayer_MaxLengthCountsRunes(t *testing.T) {
	players := new(MockPlayerRepo)
	players.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestPlayerService(players, nil).AddPlayer(context.Background(), strings.Repeat("ж", entity.MaxPlayerNameLength))

	assert.NoError(t, err)
}

func TestPlayerService_AddPlayer_DuplicateName(t *testing.T) {
	players := new(MockPlayerRepo)
	players.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrConflict)

	_, err := newTestPlayerService(players, nil).AddPlayer(context.Background(), "Marta")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestPlayerService_RemovePlayer(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	cache := NewResultCache(cacheRepo, time.Minute, time.Minute, testLogger())
	players := new(MockPlayerRepo)
	players.On("Delete", mock.Anything, uint(4)).Return(nil)
	players.On("Delete", mock.Anything, uint(5)).Return(apperrors.ErrNotFound)
	svc := newTestPlayerService(players, cache)
	ctx := context.Background()

	require.NoError(t, svc.RemovePlayer(ctx, 4))
	gen, err := cacheRepo.Get(ctx, cacheGenerationKey)
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	assert.ErrorIs(t, svc.RemovePlayer(ctx, 5), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.RemovePlayer(ctx, 0), apperrors.ErrValidation)
}
