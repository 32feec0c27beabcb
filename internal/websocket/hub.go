package websocket

import (
	"context"

	"github.com/charmbracelet/log"
)

const defaultBroadcastBuffer = 256

// outbound: сериализованное событие, ожидающее рассылки
type outbound struct {
	eventType string
	gameID    uint
	payload   []byte
}

// direct: сообщение одному клиенту
type direct struct {
	client  *Client
	payload []byte
}

// Hub хранит подключённых клиентов и рассылает им события.
// Все изменения набора клиентов выполняются в горутине Run.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	direct     chan direct
	done       chan struct{}
	metrics    *HubMetrics
	logger     *log.Logger
}

// NewHub создает хаб; broadcastBuffer <= 0 заменяется значением по умолчанию
func NewHub(broadcastBuffer int, logger *log.Logger) *Hub {
	if broadcastBuffer <= 0 {
		broadcastBuffer = defaultBroadcastBuffer
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, broadcastBuffer),
		direct:     make(chan direct, broadcastBuffer),
		done:       make(chan struct{}),
		metrics:    NewHubMetrics(),
		logger:     logger.WithPrefix("WebSocketHub"),
	}
}

// Run обрабатывает регистрацию, отключение и рассылку до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.logger.Info("hub started")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.metrics.connected()
			h.logger.Debug("client registered", "conn_id", client.ConnectionID, "clients", len(h.clients))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.deliver(msg)

		case msg := <-h.direct:
			if _, ok := h.clients[msg.client]; ok {
				msg.client.trySend(msg.payload)
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.logger.Info("hub stopped")
			return
		}
	}
}

// Register добавляет клиента. После остановки хаба клиент сразу закрывается.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		client.CloseSend()
		return false
	}
}

// Unregister удаляет клиента; повторный вызов безопасен
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast ставит событие в очередь рассылки. При переполнении очереди событие отбрасывается.
func (h *Hub) Broadcast(eventType string, gameID uint, payload []byte) {
	select {
	case h.broadcast <- outbound{eventType: eventType, gameID: gameID, payload: payload}:
	case <-h.done:
	default:
		h.logger.Warn("broadcast queue is full, event dropped", "type", eventType, "game_id", gameID)
		h.metrics.delivered(eventType, 0, 1)
	}
}

// SendTo отправляет сообщение одному клиенту (например, ошибку обработки его команды)
func (h *Hub) SendTo(client *Client, payload []byte) {
	select {
	case h.direct <- direct{client: client, payload: payload}:
	case <-h.done:
	default:
		h.logger.Warn("direct queue is full, message dropped", "conn_id", client.ConnectionID)
	}
}

// ClientCount возвращает число подключённых клиентов
func (h *Hub) ClientCount() int {
	return int(h.metrics.ActiveConnections())
}

// Metrics возвращает метрики хаба
func (h *Hub) Metrics() *HubMetrics {
	return h.metrics
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.CloseSend()
	h.metrics.disconnected()
	h.logger.Debug("client unregistered", "conn_id", client.ConnectionID, "clients", len(h.clients))
}

func (h *Hub) deliver(msg outbound) {
	var sent, dropped int64
	for client := range h.clients {
		if !client.wants(msg.gameID) {
			continue
		}
		if client.trySend(msg.payload) {
			sent++
			continue
		}
		dropped++
		// Медленный клиент: после нескольких переполнений буфера отключаем
		if client.bufferWarnings.Add(1) >= maxBufferWarnings {
			h.logger.Warn("client send buffer overflowed, disconnecting", "conn_id", client.ConnectionID)
			h.remove(client)
		}
	}
	h.metrics.delivered(msg.eventType, sent, dropped)
}
