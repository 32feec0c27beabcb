package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const relayPublishTimeout = 2 * time.Second

// Relay пересылает события между экземплярами сервиса
type Relay interface {
	Publish(ctx context.Context, payload []byte) error
	Subscribe(ctx context.Context) (<-chan []byte, error)
}

// Manager связывает сервисы с хабом: публикует события и обрабатывает команды клиентов
type Manager struct {
	hub         *Hub
	relay       Relay
	relayActive atomic.Bool
	handlers    map[string]func(data json.RawMessage, client *Client) error
	logger      *log.Logger
}

// NewManager создает менеджер. relay может быть nil: тогда события рассылаются только локально.
func NewManager(hub *Hub, relay Relay, logger *log.Logger) *Manager {
	m := &Manager{
		hub:      hub,
		relay:    relay,
		handlers: make(map[string]func(data json.RawMessage, client *Client) error),
		logger:   logger.WithPrefix("WebSocketManager"),
	}
	m.RegisterHandler(GAME_SUBSCRIBE, m.handleSubscribe)
	m.RegisterHandler(GAME_UNSUBSCRIBE, m.handleUnsubscribe)
	return m
}

// Hub возвращает хаб менеджера
func (m *Manager) Hub() *Hub {
	return m.hub
}

// Run запускает хаб и приём событий из relay; блокируется до отмены ctx
func (m *Manager) Run(ctx context.Context) {
	if m.relay != nil {
		messages, err := m.relay.Subscribe(ctx)
		if err != nil {
			m.logger.Warn("relay subscription failed, events stay local", "err", err)
		} else {
			m.relayActive.Store(true)
			go m.consumeRelay(messages)
		}
	}
	m.hub.Run(ctx)
}

func (m *Manager) consumeRelay(messages <-chan []byte) {
	for payload := range messages {
		m.deliverLocal(payload)
	}
	m.relayActive.Store(false)
	m.logger.Info("relay subscription closed")
}

// RegisterHandler регистрирует обработчик для типа сообщений клиента
func (m *Manager) RegisterHandler(eventType string, handler func(data json.RawMessage, client *Client) error) {
	m.handlers[eventType] = handler
}

// Publish рассылает событие всем заинтересованным клиентам
func (m *Manager) Publish(gameID uint, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, GameID: gameID, Data: data})
	if err != nil {
		m.logger.Error("failed to marshal event", "type", eventType, "err", err)
		return
	}

	if m.relayActive.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), relayPublishTimeout)
		defer cancel()
		err = m.relay.Publish(ctx, payload)
		if err == nil {
			return
		}
		m.logger.Warn("relay publish failed, delivering locally", "type", eventType, "err", err)
	}
	m.hub.Broadcast(eventType, gameID, payload)
}

// deliverLocal рассылает событие, пришедшее из relay, клиентам этого экземпляра
func (m *Manager) deliverLocal(payload []byte) {
	var header struct {
		Type   string `json:"type"`
		GameID uint   `json:"game_id"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		m.logger.Warn("malformed relay message dropped", "err", err)
		return
	}
	m.hub.Broadcast(header.Type, header.GameID, payload)
}

// HandleMessage обрабатывает сообщение клиента.
// Возвращает error, если соединение нужно закрыть.
func (m *Manager) HandleMessage(message []byte, client *Client) error {
	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(message, &event); err != nil {
		m.SendErrorToClient(client, "invalid_message_format", "Invalid JSON format")
		return err
	}

	handler, ok := m.handlers[event.Type]
	if !ok {
		m.SendErrorToClient(client, "unknown_message_type", fmt.Sprintf("Unknown message type: %s", event.Type))
		return nil
	}
	return handler(event.Data, client)
}

// SendErrorToClient отправляет клиенту ошибку, не закрывая соединение
func (m *Manager) SendErrorToClient(client *Client, code string, message string) {
	payload, err := json.Marshal(Event{
		Type: SERVER_ERROR,
		Data: map[string]string{
			"code":    code,
			"message": message,
		},
	})
	if err != nil {
		return
	}
	m.hub.SendTo(client, payload)
}

// GetMetrics возвращает метрики WebSocket для /health
func (m *Manager) GetMetrics() map[string]interface{} {
	metrics := m.hub.Metrics().Snapshot()
	metrics["relay_active"] = m.relayActive.Load()
	return metrics
}

func (m *Manager) handleSubscribe(data json.RawMessage, client *Client) error {
	var req subscribeRequest
	if err := json.Unmarshal(data, &req); err != nil || req.GameID == 0 {
		m.SendErrorToClient(client, "invalid_game_id", "game_id must be a positive integer")
		return nil
	}
	client.SubscribeToGame(req.GameID)
	m.logger.Debug("client subscribed to game", "conn_id", client.ConnectionID, "game_id", req.GameID)
	return nil
}

func (m *Manager) handleUnsubscribe(_ json.RawMessage, client *Client) error {
	client.UnsubscribeFromGame()
	return nil
}
