package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/scorekeeper-api/internal/handler/dto"
	"github.com/yourusername/scorekeeper-api/internal/middleware"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// respondError переводит ошибку сервиса в HTTP-ответ.
// Внутренние ошибки логируются, клиенту уходит общий текст.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), ErrorType: "validation"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), ErrorType: "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), ErrorType: "conflict"})
	default:
		logger.Error("internal server error", "path", c.FullPath(), "request_id", c.GetString(middleware.RequestIDKey), "err", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error", ErrorType: "internal"})
	}
}

// respondBindError отвечает 400 на некорректное тело запроса
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request data: " + err.Error(), ErrorType: "bad_request"})
}
