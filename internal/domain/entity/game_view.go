package entity

// GameParticipantView: строка участника в составном представлении игры
type GameParticipantView struct {
	GameID      uint   `json:"game_id"`
	PlayerID    uint   `json:"player_id"`
	PlayerName  string `json:"player_name"`
	TotalPoints int    `json:"total_points"`
	IsWinner    bool   `json:"is_winner"`
}

// GameView: финализированная игра вместе с участниками и их суммами
type GameView struct {
	Game         Game                  `json:"game"`
	Participants []GameParticipantView `json:"participants"`
}

// Scoreboard: текущее состояние одной игры (открытой или закрытой)
type Scoreboard struct {
	Game         Game                  `json:"game"`
	Participants []GameParticipantView `json:"participants"`
	Scores       []Score               `json:"scores"`
	Totals       PlayerTotals          `json:"totals"`
}

// BuildParticipantViews собирает строки представления в порядке participants
func BuildParticipantViews(gameID uint, participants []ParticipantWithName, totals PlayerTotals) []GameParticipantView {
	views := make([]GameParticipantView, len(participants))
	for i, p := range participants {
		views[i] = GameParticipantView{
			GameID:      gameID,
			PlayerID:    p.PlayerID,
			PlayerName:  p.PlayerName,
			TotalPoints: totals.Of(p.PlayerID),
			IsWinner:    p.Winner,
		}
	}
	return views
}
