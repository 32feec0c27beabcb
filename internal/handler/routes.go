package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/scorekeeper-api/internal/middleware"
)

// Handlers: набор обработчиков, из которых собираются маршруты.
// WS может быть nil, если табло в реальном времени выключено.
type Handlers struct {
	Players    *PlayerHandler
	Categories *CategoryHandler
	Games      *GameHandler
	WS         *WSHandler
	Health     *HealthHandler
}

// RegisterRoutes настраивает маршруты API.
// writeGuards применяются только к изменяющим запросам (например, ограничение частоты).
func RegisterRoutes(router *gin.Engine, h Handlers, writeGuards ...gin.HandlerFunc) {
	if h.Health != nil {
		router.GET("/health", h.Health.Health)
	}
	if h.WS != nil {
		router.GET("/ws", h.WS.HandleConnection)
	}

	api := router.Group("/api")
	{
		api.GET("/categories", h.Categories.ListCategories)

		players := api.Group("/players")
		{
			players.GET("", h.Players.ListPlayers)

			writes := players.Group("", writeGuards...)
			writes.POST("", h.Players.CreatePlayer)
			writes.DELETE("/:id", middleware.ExtractUintParam("id", "playerID"), h.Players.DeletePlayer)
		}

		games := api.Group("/games")
		{
			games.GET("", h.Games.ListFinalizedGames)
			games.GET("/export", h.Games.ExportGames)
			games.Group("", writeGuards...).POST("", h.Games.CreateGame)

			gameWithID := games.Group("/:id")
			gameWithID.Use(middleware.ExtractUintParam("id", "gameID"))
			{
				gameWithID.GET("/scoreboard", h.Games.GetScoreboard)

				writes := gameWithID.Group("", writeGuards...)
				writes.POST("/participants", h.Games.AddParticipants)
				writes.PUT("/scores", h.Games.UpsertScore)
				writes.POST("/finalize", h.Games.FinalizeGame)
			}
		}
	}
}
