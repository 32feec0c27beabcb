package entity

// PlayerStatistics: строка, возвращаемая процедурой get_player_statistics
type PlayerStatistics struct {
	TotalGames int64   `gorm:"column:total_games"`
	TotalWins  int64   `gorm:"column:total_wins"`
	WinRate    float64 `gorm:"column:win_rate"`
}

// CareerStats: карьерная статистика игрока по всем финализированным играм.
// StatsUnavailable = true означает, что нули подставлены из-за ошибки процедуры,
// а не потому что игрок ещё не играл.
type CareerStats struct {
	GamesPlayed      int64   `json:"games_played"`
	GamesWon         int64   `json:"games_won"`
	WinRate          float64 `json:"win_rate"`
	StatsUnavailable bool    `json:"stats_unavailable,omitempty"`
}

// NewCareerStats вычисляет долю побед; при нуле сыгранных игр доля равна 0
func NewCareerStats(played, won int64) CareerStats {
	stats := CareerStats{GamesPlayed: played, GamesWon: won}
	if played > 0 {
		stats.WinRate = float64(won) / float64(played)
	}
	return stats
}

// UnavailableCareerStats возвращает нулевую статистику с пометкой о деградации
func UnavailableCareerStats() CareerStats {
	return CareerStats{StatsUnavailable: true}
}
