package websocket

// Типы событий табло (сервер -> клиент)
const (
	// SCORE_UPDATED сообщает о записи очков игрока в категории
	SCORE_UPDATED = "SCORE_UPDATED"

	// GAME_CREATED сообщает о создании новой игры
	GAME_CREATED = "GAME_CREATED"

	// PARTICIPANTS_ADDED сообщает о добавлении игроков в игру
	PARTICIPANTS_ADDED = "PARTICIPANTS_ADDED"

	// GAME_FINALIZED сообщает о закрытии игры и победителе
	GAME_FINALIZED = "GAME_FINALIZED"
)

// Типы сообщений клиент -> сервер
const (
	// GAME_SUBSCRIBE ограничивает поток событий одной игрой
	GAME_SUBSCRIBE = "game:subscribe"

	// GAME_UNSUBSCRIBE возвращает клиента к событиям всех игр
	GAME_UNSUBSCRIBE = "game:unsubscribe"

	// SERVER_ERROR отправляется клиенту при ошибке обработки его сообщения
	SERVER_ERROR = "server:error"
)

// Event: конверт сообщения WebSocket.
// GameID = 0 у событий, не относящихся к конкретной игре.
type Event struct {
	Type   string      `json:"type"`
	GameID uint        `json:"game_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// subscribeRequest: данные сообщения game:subscribe
type subscribeRequest struct {
	GameID uint `json:"game_id"`
}
