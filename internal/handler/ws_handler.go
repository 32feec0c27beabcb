package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/scorekeeper-api/internal/websocket"
)

// WSHandler обрабатывает WebSocket соединения табло
type WSHandler struct {
	wsManager    *websocket.Manager
	upgrader     gorillaws.Upgrader
	clientBuffer int
	logger       *log.Logger
}

// NewWSHandler создает новый обработчик WebSocket.
// allowedOrigins совпадает со списком CORS.
func NewWSHandler(wsManager *websocket.Manager, allowedOrigins []string, clientBuffer int, logger *log.Logger) *WSHandler {
	h := &WSHandler{
		wsManager:    wsManager,
		clientBuffer: clientBuffer,
		logger:       logger.WithPrefix("WSHandler"),
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	h.upgrader = gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Пустой Origin: не браузерный клиент
			if origin == "" {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			h.logger.Warn("rejected websocket origin", "origin", origin)
			return false
		},
		EnableCompression: true,
	}
	return h
}

// HandleConnection обрабатывает входящее WebSocket соединение.
// ?game_id=N сразу подписывает клиента на одну игру.
// GET /ws
func (h *WSHandler) HandleConnection(c *gin.Context) {
	var query struct {
		GameID uint `form:"game_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := websocket.NewClient(h.wsManager.Hub(), conn, h.clientBuffer, h.logger)
	if query.GameID != 0 {
		client.SubscribeToGame(query.GameID)
	}
	h.logger.Debug("websocket connected", "remote", c.ClientIP(), "game_id", query.GameID)

	client.StartPumps(h.wsManager.HandleMessage)
}
