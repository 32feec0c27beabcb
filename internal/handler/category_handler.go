package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/scorekeeper-api/internal/service"
)

// CategoryHandler отдаёт справочник категорий
type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *log.Logger
}

// NewCategoryHandler создает обработчик категорий
func NewCategoryHandler(categoryService *service.CategoryService, logger *log.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.WithPrefix("CategoryHandler"),
	}
}

// ListCategories возвращает категории, опционально только одной секции
// GET /api/categories?section=upper|lower
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Query("section"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
