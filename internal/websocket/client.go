package websocket

import (
	"bytes"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время ожидания следующего сообщения или pong от клиента.
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Клиент присылает только короткие команды подписки
	maxMessageSize = 512

	defaultClientBufferSize = 64

	// Сколько раз подряд можно переполнить буфер клиента до отключения
	maxBufferWarnings = 3
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// MessageHandler обрабатывает сообщение клиента; ошибка закрывает соединение
type MessageHandler func(message []byte, client *Client) error

// Client является посредником между WebSocket соединением и хабом.
type Client struct {
	// Уникальный ID соединения
	ConnectionID string

	hub  *Hub
	conn *websocket.Conn

	// Буферизованный канал исходящих сообщений
	send       chan []byte
	sendClosed atomic.Bool

	// ID игры, на которую подписан клиент (0 = события всех игр)
	gameID atomic.Uint64

	bufferWarnings atomic.Int32
	logger         *log.Logger
}

// NewClient создает клиента для установленного соединения
func NewClient(hub *Hub, conn *websocket.Conn, bufferSize int, logger *log.Logger) *Client {
	if bufferSize <= 0 {
		bufferSize = defaultClientBufferSize
	}
	connectionID := uuid.New().String()
	return &Client{
		ConnectionID: connectionID,
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, bufferSize),
		logger:       logger.With("conn_id", connectionID),
	}
}

// SubscribeToGame ограничивает поток событий одной игрой
func (c *Client) SubscribeToGame(gameID uint) {
	c.gameID.Store(uint64(gameID))
}

// UnsubscribeFromGame возвращает клиента к событиям всех игр
func (c *Client) UnsubscribeFromGame() {
	c.gameID.Store(0)
}

// GameID возвращает игру, на которую подписан клиент
func (c *Client) GameID() uint {
	return uint(c.gameID.Load())
}

// wants сообщает, нужно ли клиенту событие игры gameID
func (c *Client) wants(gameID uint) bool {
	sub := c.GameID()
	return sub == 0 || gameID == 0 || sub == gameID
}

// trySend кладёт сообщение в буфер без блокировки. Вызывается только из горутины хаба.
func (c *Client) trySend(message []byte) bool {
	if c.sendClosed.Load() {
		return false
	}
	select {
	case c.send <- message:
		c.bufferWarnings.Store(0)
		return true
	default:
		return false
	}
}

// CloseSend закрывает канал send ровно один раз
func (c *Client) CloseSend() bool {
	if c.sendClosed.CompareAndSwap(false, true) {
		close(c.send)
		return true
	}
	return false
}

// StartPumps регистрирует клиента в хабе и запускает горутины чтения и записи
func (c *Client) StartPumps(handler MessageHandler) {
	if !c.hub.Register(c) {
		c.logger.Warn("hub is stopped, closing connection")
		c.conn.Close()
		return
	}
	go c.writePump()
	go c.readPump(handler)
}

// readPump читает сообщения от клиента и передает их обработчику
func (c *Client) readPump(handler MessageHandler) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		c.logger.Debug("read pump stopped")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("read error", "err", err)
			}
			return
		}
		c.hub.metrics.received()

		if err := safeHandleMessage(message, c, handler); err != nil {
			c.logger.Warn("message handler failed, closing connection", "err", err)
			return
		}
	}
}

// safeHandleMessage вызывает обработчик с recover
func safeHandleMessage(message []byte, client *Client, handler MessageHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			client.logger.Error("panic in message handler", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
	if handler == nil {
		return nil
	}
	return handler(message, client)
}

// writePump отправляет сообщения клиенту из канала send
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logger.Debug("write pump stopped")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("write error", "err", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
