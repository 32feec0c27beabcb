package service

// EventPublisher рассылает события табло подключённым клиентам.
// Сервисы допускают nil: тогда события никуда не отправляются.
type EventPublisher interface {
	Publish(gameID uint, eventType string, data interface{})
}

// ScoreUpdatedEvent отправляется после каждой записи очков
type ScoreUpdatedEvent struct {
	GameID     uint `json:"game_id"`
	PlayerID   uint `json:"player_id"`
	CategoryID uint `json:"category_id"`
	Points     int  `json:"points"`
}

// ParticipantsAddedEvent отправляется после добавления игроков в игру
type ParticipantsAddedEvent struct {
	GameID    uint   `json:"game_id"`
	PlayerIDs []uint `json:"player_ids"`
}

// GameFinalizedEvent отправляется после закрытия игры
type GameFinalizedEvent struct {
	GameID   uint         `json:"game_id"`
	WinnerID *uint        `json:"winner_id"`
	Totals   map[uint]int `json:"totals"`
}

func publish(p EventPublisher, gameID uint, eventType string, data interface{}) {
	if p == nil {
		return
	}
	p.Publish(gameID, eventType, data)
}
