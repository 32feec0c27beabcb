package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCareerStats_WinRate(t *testing.T) {
	stats := NewCareerStats(4, 1)

	assert.Equal(t, int64(4), stats.GamesPlayed)
	assert.Equal(t, int64(1), stats.GamesWon)
	assert.InDelta(t, 0.25, stats.WinRate, 1e-9)
	assert.False(t, stats.StatsUnavailable)
}

func TestNewCareerStats_NoGames(t *testing.T) {
	stats := NewCareerStats(0, 0)

	assert.Equal(t, CareerStats{}, stats, "Без игр статистика должна быть нулевой")
}

func TestUnavailableCareerStats(t *testing.T) {
	stats := UnavailableCareerStats()

	assert.Zero(t, stats.GamesPlayed)
	assert.Zero(t, stats.GamesWon)
	assert.Zero(t, stats.WinRate)
	assert.True(t, stats.StatsUnavailable)
}

func TestIsValidSection(t *testing.T) {
	assert.True(t, IsValidSection(SectionUpper))
	assert.True(t, IsValidSection(SectionLower))
	assert.False(t, IsValidSection(""))
	assert.False(t, IsValidSection("bonus"))
}

func TestBuildParticipantViews_KeepsOrderAndDefaultsToZero(t *testing.T) {
	participants := []ParticipantWithName{
		{GameID: 5, PlayerID: 2, PlayerName: "Bia", Winner: true},
		{GameID: 5, PlayerID: 1, PlayerName: "Ana"},
	}

	views := BuildParticipantViews(5, participants, PlayerTotals{2: 30})

	assert.Equal(t, []GameParticipantView{
		{GameID: 5, PlayerID: 2, PlayerName: "Bia", TotalPoints: 30, IsWinner: true},
		{GameID: 5, PlayerID: 1, PlayerName: "Ana", TotalPoints: 0},
	}, views)
}
