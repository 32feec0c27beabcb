package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/yourusername/scorekeeper-api/internal/websocket"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler отдаёт состояние зависимостей сервиса
type HealthHandler struct {
	db        *gorm.DB
	redis     redis.UniversalClient
	wsManager *websocket.Manager
}

// NewHealthHandler создает обработчик проверки здоровья.
// redisClient и wsManager могут быть nil, если соответствующие подсистемы выключены.
func NewHealthHandler(db *gorm.DB, redisClient redis.UniversalClient, wsManager *websocket.Manager) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, wsManager: wsManager}
}

// Health проверяет БД и Redis.
// Недоступная БД даёт 503, недоступный Redis только отражается в ответе.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	body["database"] = dbStatus

	switch {
	case h.redis == nil:
		body["redis"] = "disabled"
	case h.redis.Ping(ctx).Err() != nil:
		body["redis"] = "unavailable"
	default:
		body["redis"] = "ok"
	}

	if h.wsManager != nil {
		body["websocket"] = h.wsManager.GetMetrics()
	}

	c.JSON(status, body)
}
