package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/scorekeeper-api/internal/handler/dto"
	"github.com/yourusername/scorekeeper-api/internal/service"
)

// GameHandler обрабатывает запросы, связанные с играми
type GameHandler struct {
	lifecycle *service.GameLifecycle
	ledger    *service.ScoreLedger
	views     *service.GameViewAssembler
	logger    *log.Logger
}

// NewGameHandler создает новый обработчик игр
func NewGameHandler(
	lifecycle *service.GameLifecycle,
	ledger *service.ScoreLedger,
	views *service.GameViewAssembler,
	logger *log.Logger,
) *GameHandler {
	return &GameHandler{
		lifecycle: lifecycle,
		ledger:    ledger,
		views:     views,
		logger:    logger.WithPrefix("GameHandler"),
	}
}

// CreateGame создает открытую игру
// POST /api/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	game, err := h.lifecycle.CreateGame(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// ListFinalizedGames возвращает закрытые игры с участниками и суммами, новые первыми
// GET /api/games
func (h *GameHandler) ListFinalizedGames(c *gin.Context) {
	views, err := h.views.ComposeGameViews(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetScoreboard возвращает текущее табло игры
// GET /api/games/:id/scoreboard
func (h *GameHandler) GetScoreboard(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	board, err := h.views.GetScoreboard(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// AddParticipants добавляет игроков в игру
// POST /api/games/:id/participants
func (h *GameHandler) AddParticipants(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	var req dto.AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.lifecycle.AddParticipants(c.Request.Context(), gameID, req.PlayerIDs); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"game_id": gameID, "player_ids": req.PlayerIDs})
}

// UpsertScore записывает очки игрока в категории
// PUT /api/games/:id/scores
func (h *GameHandler) UpsertScore(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	var req dto.UpsertScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	score, err := h.ledger.UpsertScore(c.Request.Context(), gameID, req.PlayerID, req.CategoryID, *req.Points)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// FinalizeGame закрывает игру и объявляет победителя
// POST /api/games/:id/finalize
func (h *GameHandler) FinalizeGame(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	result, err := h.lifecycle.FinalizeGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
