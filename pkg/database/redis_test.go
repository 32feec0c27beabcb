package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scorekeeper-api/internal/config"
)

func TestUniversalOptions_SingleFallsBackToAddr(t *testing.T) {
	opts, err := UniversalOptions(config.RedisConfig{Addr: "localhost:6379", MinRetryBackoff: 10})

	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:6379"}, opts.Addrs)
	assert.Equal(t, 10*time.Millisecond, opts.MinRetryBackoff)
	assert.Empty(t, opts.MasterName)
}

func TestUniversalOptions_SentinelRequiresMaster(t *testing.T) {
	_, err := UniversalOptions(config.RedisConfig{Mode: "sentinel", Addrs: []string{"a:1"}})
	assert.Error(t, err)

	opts, err := UniversalOptions(config.RedisConfig{Mode: "sentinel", Addrs: []string{"a:1"}, MasterName: "mymaster"})
	require.NoError(t, err)
	assert.Equal(t, "mymaster", opts.MasterName)
}

func TestUniversalOptions_Errors(t *testing.T) {
	_, err := UniversalOptions(config.RedisConfig{})
	assert.Error(t, err, "Без адресов должна быть ошибка")

	_, err = UniversalOptions(config.RedisConfig{Mode: "bogus", Addr: "a:1"})
	assert.Error(t, err)
}
