package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

type cachedView struct {
	GameID uint         `json:"game_id"`
	Totals map[uint]int `json:"totals"`
	Names  []string     `json:"names"`
}

func newTestCacheRepo(t *testing.T, prefix string) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo, err := NewCacheRepo(client, prefix)
	require.NoError(t, err)
	return repo, mr
}

func TestNewCacheRepo_NilClient(t *testing.T) {
	_, err := NewCacheRepo(nil, "scorekeeper")

	assert.Error(t, err)
}

func TestCacheRepo_MissingKeyIsNotFound(t *testing.T) {
	repo, _ := newTestCacheRepo(t, "scorekeeper")
	ctx := context.Background()

	_, err := repo.Get(ctx, "absent")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var dest cachedView
	err = repo.GetJSON(ctx, "absent", &dest)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_JSONRoundTripWithPrefixAndTTL(t *testing.T) {
	repo, mr := newTestCacheRepo(t, "scorekeeper")
	ctx := context.Background()
	want := cachedView{GameID: 3, Totals: map[uint]int{1: 42, 2: -5}, Names: []string{"Ana", "Bia"}}

	require.NoError(t, repo.SetJSON(ctx, "views:finalized:g0", want, time.Minute))

	var got cachedView
	require.NoError(t, repo.GetJSON(ctx, "views:finalized:g0", &got))
	assert.Equal(t, want, got)
	assert.True(t, mr.Exists("scorekeeper:views:finalized:g0"), "ключ должен храниться с префиксом")
	assert.Equal(t, time.Minute, mr.TTL("scorekeeper:views:finalized:g0"))
}

func TestCacheRepo_IncrementAndDelete(t *testing.T) {
	repo, mr := newTestCacheRepo(t, "")
	ctx := context.Background()

	first, err := repo.Increment(ctx, "scores:generation")
	require.NoError(t, err)
	second, err := repo.Increment(ctx, "scores:generation")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	raw, err := repo.Get(ctx, "scores:generation")
	require.NoError(t, err)
	assert.Equal(t, "2", raw)

	require.NoError(t, repo.Delete(ctx, "scores:generation"))
	assert.False(t, mr.Exists("scores:generation"))
}

func TestCacheRepo_ServerDownIsNotNotFound(t *testing.T) {
	repo, mr := newTestCacheRepo(t, "scorekeeper")
	mr.Close()

	_, err := repo.Get(context.Background(), "scores:generation")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
