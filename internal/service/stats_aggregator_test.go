package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

func newTestAggregator(players *MockPlayerRepo, scores *MockScoreRepo, stats *MockStatsRepo, cache *ResultCache) *StatsAggregator {
	return NewStatsAggregator(players, scores, stats, cache, 4, testLogger())
}

func TestStatsAggregator_ComputeTotals(t *testing.T) {
	scores := new(MockScoreRepo)
	scores.On("ListByGame", mock.Anything, uint(1)).Return([]entity.Score{
		{GameID: 1, PlayerID: 10, CategoryID: 1, Points: 3},
		{GameID: 1, PlayerID: 10, CategoryID: 2, Points: 8},
		{GameID: 1, PlayerID: 20, CategoryID: 1, Points: 5},
		{GameID: 1, PlayerID: 10, CategoryID: 3, Points: -1},
	}, nil)
	agg := newTestAggregator(new(MockPlayerRepo), scores, new(MockStatsRepo), nil)

	totals, err := agg.ComputeTotals(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, entity.PlayerTotals{10: 10, 20: 5}, totals)
	_, has30 := totals[30]
	assert.False(t, has30, "players without score rows must be absent")
}

func TestStatsAggregator_ComputeTotals_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	scores := new(MockScoreRepo)
	scores.On("ListByGame", mock.Anything, uint(2)).Return(nil, storeErr)
	agg := newTestAggregator(new(MockPlayerRepo), scores, new(MockStatsRepo), nil)

	_, err := agg.ComputeTotals(context.Background(), 2)

	assert.ErrorIs(t, err, storeErr)
}

func TestStatsAggregator_ComputePlayerCareerStats(t *testing.T) {
	tests := []struct {
		name string
		row  *entity.PlayerStatistics
		err  error
		want entity.CareerStats
	}{
		{
			name: "four games one win",
			row:  &entity.PlayerStatistics{TotalGames: 4, TotalWins: 1, WinRate: 0.25},
			want: entity.CareerStats{GamesPlayed: 4, GamesWon: 1, WinRate: 0.25},
		},
		{
			name: "no games",
			row:  &entity.PlayerStatistics{},
			want: entity.CareerStats{},
		},
		{
			name: "procedure failure degrades to zeros",
			err:  errors.New("function get_player_statistics does not exist"),
			want: entity.CareerStats{StatsUnavailable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := new(MockStatsRepo)
			if tt.err != nil {
				stats.On("GetPlayerStatistics", mock.Anything, uint(7)).Return(nil, tt.err)
			} else {
				stats.On("GetPlayerStatistics", mock.Anything, uint(7)).Return(tt.row, nil)
			}
			agg := newTestAggregator(new(MockPlayerRepo), new(MockScoreRepo), stats, nil)

			got := agg.ComputePlayerCareerStats(context.Background(), 7)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatsAggregator_CareerStatsAreCachedPerGeneration(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	cache := NewResultCache(cacheRepo, time.Minute, time.Minute, testLogger())
	stats := new(MockStatsRepo)
	stats.On("GetPlayerStatistics", mock.Anything, uint(3)).
		Return(&entity.PlayerStatistics{TotalGames: 2, TotalWins: 1}, nil).Twice()
	agg := newTestAggregator(new(MockPlayerRepo), new(MockScoreRepo), stats, cache)
	ctx := context.Background()

	first := agg.ComputePlayerCareerStats(ctx, 3)
	second := agg.ComputePlayerCareerStats(ctx, 3)
	cache.Invalidate(ctx)
	third := agg.ComputePlayerCareerStats(ctx, 3)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	stats.AssertNumberOfCalls(t, "GetPlayerStatistics", 2)
}

func TestStatsAggregator_DegradedStatsAreNotCached(t *testing.T) {
	cache := NewResultCache(newMemoryCacheRepo(), time.Minute, time.Minute, testLogger())
	stats := new(MockStatsRepo)
	stats.On("GetPlayerStatistics", mock.Anything, uint(3)).Return(nil, errors.New("timeout")).Once()
	stats.On("GetPlayerStatistics", mock.Anything, uint(3)).Return(&entity.PlayerStatistics{TotalGames: 1}, nil).Once()
	agg := newTestAggregator(new(MockPlayerRepo), new(MockScoreRepo), stats, cache)

	assert.True(t, agg.ComputePlayerCareerStats(context.Background(), 3).StatsUnavailable)
	assert.Equal(t, int64(1), agg.ComputePlayerCareerStats(context.Background(), 3).GamesPlayed)
}

func TestStatsAggregator_BrokenCacheFallsBackToStore(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	cacheRepo.failAll = true
	cache := NewResultCache(cacheRepo, time.Minute, time.Minute, testLogger())
	stats := new(MockStatsRepo)
	stats.On("GetPlayerStatistics", mock.Anything, uint(1)).Return(&entity.PlayerStatistics{TotalGames: 3, TotalWins: 3}, nil)
	agg := newTestAggregator(new(MockPlayerRepo), new(MockScoreRepo), stats, cache)

	got := agg.ComputePlayerCareerStats(context.Background(), 1)

	assert.Equal(t, entity.CareerStats{GamesPlayed: 3, GamesWon: 3, WinRate: 1}, got)
}

func TestStatsAggregator_ListPlayersWithStats_PreservesOrder(t *testing.T) {
	// Arrange: первый игрок отвечает дольше всех
	players := new(MockPlayerRepo)
	players.On("ListOrderedByName", mock.Anything).Return([]entity.Player{
		{ID: 3, Name: "Ana"},
		{ID: 1, Name: "Bruno"},
		{ID: 2, Name: "Carla"},
	}, nil)
	stats := new(MockStatsRepo)
	stats.On("GetPlayerStatistics", mock.Anything, uint(3)).
		After(60*time.Millisecond).Return(&entity.PlayerStatistics{TotalGames: 4, TotalWins: 1}, nil)
	stats.On("GetPlayerStatistics", mock.Anything, uint(1)).
		After(30*time.Millisecond).Return(nil, errors.New("boom"))
	stats.On("GetPlayerStatistics", mock.Anything, uint(2)).
		Return(&entity.PlayerStatistics{}, nil)
	agg := newTestAggregator(players, new(MockScoreRepo), stats, nil)

	// Act
	result, err := agg.ListPlayersWithStats(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "Ana", result[0].Name)
	assert.Equal(t, "Bruno", result[1].Name)
	assert.Equal(t, "Carla", result[2].Name)

	assert.Equal(t, 0.25, result[0].Stats.WinRate)
	assert.True(t, result[1].Stats.StatsUnavailable, "failure of one player must not abort the batch")
	assert.Equal(t, entity.CareerStats{}, result[2].Stats)
}

func TestStatsAggregator_ListPlayersWithStats_ListError(t *testing.T) {
	players := new(MockPlayerRepo)
	players.On("ListOrderedByName", mock.Anything).Return(nil, errors.New("db down"))
	agg := newTestAggregator(players, new(MockScoreRepo), new(MockStatsRepo), nil)

	_, err := agg.ListPlayersWithStats(context.Background())

	assert.Error(t, err)
}
