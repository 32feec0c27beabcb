package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

const (
	cacheGenerationKey   = "scores:generation"
	finalizedViewsKeyFmt = "views:finalized:g%d"
	careerStatsKeyFmt    = "stats:player:%d:g%d"
)

// ResultCache хранит производные данные (представления игр, карьерную статистику)
// под номером поколения. Любое изменение финализированных игр или состава игроков
// увеличивает поколение, старые ключи доживают до TTL и больше не читаются.
//
// Ошибки Redis только логируются: без кеша сервисы работают напрямую с базой.
type ResultCache struct {
	repo     repository.CacheRepository
	logger   *log.Logger
	viewsTTL time.Duration
	statsTTL time.Duration
}

// NewResultCache возвращает nil, если repo == nil; методы nil-кеша ничего не делают
func NewResultCache(repo repository.CacheRepository, viewsTTL, statsTTL time.Duration, logger *log.Logger) *ResultCache {
	if repo == nil {
		return nil
	}
	return &ResultCache{
		repo:     repo,
		logger:   logger.WithPrefix("ResultCache"),
		viewsTTL: viewsTTL,
		statsTTL: statsTTL,
	}
}

// noGeneration означает, что поколение прочитать не удалось и писать в кеш нельзя
const noGeneration int64 = -1

// generation возвращает текущее поколение; false означает, что кешем пользоваться нельзя
func (c *ResultCache) generation(ctx context.Context) (int64, bool) {
	if c == nil {
		return 0, false
	}
	raw, err := c.repo.Get(ctx, cacheGenerationKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, true
	}
	if err != nil {
		c.logger.Warn("failed to read cache generation", "err", err)
		return 0, false
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.logger.Warn("malformed cache generation", "value", raw, "err", err)
		return 0, false
	}
	return gen, true
}

func (c *ResultCache) load(ctx context.Context, key string, dest interface{}) bool {
	err := c.repo.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		c.logger.Warn("cache read failed", "key", key, "err", err)
	}
	return false
}

func (c *ResultCache) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := c.repo.SetJSON(ctx, key, value, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// Invalidate переводит кеш на новое поколение
func (c *ResultCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if _, err := c.repo.Increment(ctx, cacheGenerationKey); err != nil {
		c.logger.Warn("failed to bump cache generation", "err", err)
	}
}

func (c *ResultCache) getFinalizedViews(ctx context.Context) ([]entity.GameView, int64, bool) {
	gen, ok := c.generation(ctx)
	if !ok {
		return nil, noGeneration, false
	}
	var views []entity.GameView
	if !c.load(ctx, fmt.Sprintf(finalizedViewsKeyFmt, gen), &views) {
		return nil, gen, false
	}
	return views, gen, true
}

func (c *ResultCache) putFinalizedViews(ctx context.Context, gen int64, views []entity.GameView) {
	if c == nil || gen == noGeneration {
		return
	}
	c.store(ctx, fmt.Sprintf(finalizedViewsKeyFmt, gen), views, c.viewsTTL)
}

func (c *ResultCache) getCareerStats(ctx context.Context, playerID uint) (entity.CareerStats, int64, bool) {
	gen, ok := c.generation(ctx)
	if !ok {
		return entity.CareerStats{}, noGeneration, false
	}
	var stats entity.CareerStats
	if !c.load(ctx, fmt.Sprintf(careerStatsKeyFmt, playerID, gen), &stats) {
		return entity.CareerStats{}, gen, false
	}
	return stats, gen, true
}

func (c *ResultCache) putCareerStats(ctx context.Context, gen int64, playerID uint, stats entity.CareerStats) {
	if c == nil || gen == noGeneration {
		return
	}
	c.store(ctx, fmt.Sprintf(careerStatsKeyFmt, playerID, gen), stats, c.statsTTL)
}
