package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/scorekeeper-api/internal/handler/dto"
	"github.com/yourusername/scorekeeper-api/internal/service"
)

// PlayerHandler обрабатывает запросы, связанные с игроками
type PlayerHandler struct {
	playerService *service.PlayerService
	logger        *log.Logger
}

// NewPlayerHandler создает новый обработчик игроков
func NewPlayerHandler(playerService *service.PlayerService, logger *log.Logger) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		logger:        logger.WithPrefix("PlayerHandler"),
	}
}

// ListPlayers возвращает игроков по алфавиту с карьерной статистикой
// GET /api/players
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerService.ListPlayers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// CreatePlayer добавляет игрока
// POST /api/players
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	player, err := h.playerService.AddPlayer(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// DeletePlayer удаляет игрока
// DELETE /api/players/:id
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	playerID := c.MustGet("playerID").(uint)

	if err := h.playerService.RemovePlayer(c.Request.Context(), playerID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
