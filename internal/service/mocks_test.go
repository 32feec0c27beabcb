package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type MockPlayerRepo struct {
	mock.Mock
}

func (m *MockPlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepo) GetByID(ctx context.Context, id uint) (*entity.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (m *MockPlayerRepo) ListOrderedByName(ctx context.Context) ([]entity.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Player), args.Error(1)
}

func (m *MockPlayerRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context, section string) ([]entity.Category, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

type MockGameRepo struct {
	mock.Mock
}

func (m *MockGameRepo) Create(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepo) GetByID(ctx context.Context, id uint) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepo) ListFinalized(ctx context.Context) ([]entity.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Game), args.Error(1)
}

func (m *MockGameRepo) Finalize(ctx context.Context, gameID uint, winnerID *uint) error {
	args := m.Called(ctx, gameID, winnerID)
	return args.Error(0)
}

type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) CreateBatch(ctx context.Context, participants []entity.Participant) error {
	args := m.Called(ctx, participants)
	return args.Error(0)
}

func (m *MockParticipantRepo) ListByGameWithNames(ctx context.Context, gameID uint) ([]entity.ParticipantWithName, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ParticipantWithName), args.Error(1)
}

func (m *MockParticipantRepo) Exists(ctx context.Context, gameID, playerID uint) (bool, error) {
	args := m.Called(ctx, gameID, playerID)
	if fn, ok := args.Get(0).(func(context.Context, uint, uint) bool); ok {
		return fn(ctx, gameID, playerID), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

type MockScoreRepo struct {
	mock.Mock
}

func (m *MockScoreRepo) FindByKey(ctx context.Context, gameID, playerID, categoryID uint) (*entity.Score, error) {
	args := m.Called(ctx, gameID, playerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Score), args.Error(1)
}

func (m *MockScoreRepo) Create(ctx context.Context, score *entity.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepo) UpdatePoints(ctx context.Context, scoreID uint, points int) error {
	args := m.Called(ctx, scoreID, points)
	return args.Error(0)
}

func (m *MockScoreRepo) ListByGame(ctx context.Context, gameID uint) ([]entity.Score, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Score), args.Error(1)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetPlayerStatistics(ctx context.Context, playerID uint) (*entity.PlayerStatistics, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlayerStatistics), args.Error(1)
}

// ============================================================================
// Фейки
// ============================================================================

// memoryScoreRepo хранит очки в памяти с уникальностью по тройке, как таблица scores
type memoryScoreRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*entity.Score
}

func newMemoryScoreRepo() *memoryScoreRepo {
	return &memoryScoreRepo{rows: make(map[uint]*entity.Score)}
}

func (r *memoryScoreRepo) FindByKey(_ context.Context, gameID, playerID, categoryID uint) (*entity.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.GameID == gameID && s.PlayerID == playerID && s.CategoryID == categoryID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryScoreRepo) Create(_ context.Context, score *entity.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.GameID == score.GameID && s.PlayerID == score.PlayerID && s.CategoryID == score.CategoryID {
			return apperrors.ErrConflict
		}
	}
	r.nextID++
	score.ID = r.nextID
	copied := *score
	r.rows[score.ID] = &copied
	return nil
}

func (r *memoryScoreRepo) UpdatePoints(_ context.Context, scoreID uint, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[scoreID]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Points = points
	return nil
}

func (r *memoryScoreRepo) ListByGame(_ context.Context, gameID uint) ([]entity.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Score
	for _, s := range r.rows {
		if s.GameID == gameID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// memoryCacheRepo: CacheRepository в памяти
type memoryCacheRepo struct {
	mu      sync.Mutex
	values  map[string]string
	failAll bool
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: make(map[string]string)}
}

func (c *memoryCacheRepo) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return "", errCacheDown
	}
	v, ok := c.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *memoryCacheRepo) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCacheRepo) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return 0, errCacheDown
	}
	var n int64
	if v, ok := c.values[key]; ok {
		fmt.Sscan(v, &n)
	}
	n++
	c.values[key] = fmt.Sprint(n)
	return n, nil
}

func (c *memoryCacheRepo) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return errCacheDown
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = string(data)
	return nil
}

func (c *memoryCacheRepo) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return errCacheDown
	}
	v, ok := c.values[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal([]byte(v), dest)
}

var errCacheDown = errors.New("cache is down")

// recordingPublisher запоминает опубликованные события
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	gameID    uint
	eventType string
	data      interface{}
}

func (p *recordingPublisher) Publish(gameID uint, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{gameID: gameID, eventType: eventType, data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}
