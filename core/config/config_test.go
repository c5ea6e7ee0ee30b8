package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/core/config"
)

func TestLoadDefaults(t *testing.T) {
	type cacheSettings struct {
		MaxSize    int           `env:"TEST_CACHE_MAX_SIZE" envDefault:"500"`
		Expiration time.Duration `env:"TEST_CACHE_EXPIRATION" envDefault:"10s"`
	}

	var cfg cacheSettings
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 500, cfg.MaxSize)
	assert.Equal(t, 10*time.Second, cfg.Expiration)
}

func TestLoadFromEnvironment(t *testing.T) {
	type serverSettings struct {
		Addr    string        `env:"TEST_SERVER_ADDR" envDefault:":8080"`
		Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"5s"`
	}

	t.Setenv("TEST_SERVER_ADDR", ":9090")
	t.Setenv("TEST_SERVER_TIMEOUT", "30s")

	var cfg serverSettings
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadCachesPerType(t *testing.T) {
	type roomSettings struct {
		CleanupDelay time.Duration `env:"TEST_ROOM_CLEANUP_DELAY" envDefault:"0s"`
	}

	t.Setenv("TEST_ROOM_CLEANUP_DELAY", "2s")

	var first roomSettings
	require.NoError(t, config.Load(&first))
	require.Equal(t, 2*time.Second, first.CleanupDelay)

	// A later change to the environment does not affect the cached type.
	t.Setenv("TEST_ROOM_CLEANUP_DELAY", "9s")

	var second roomSettings
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 2*time.Second, second.CleanupDelay)
}

func TestLoadInvalidValue(t *testing.T) {
	type badSettings struct {
		Count int `env:"TEST_BAD_COUNT" envDefault:"1"`
	}

	t.Setenv("TEST_BAD_COUNT", "not-a-number")

	var cfg badSettings
	require.Error(t, config.Load(&cfg))
}

func TestLoadNil(t *testing.T) {
	t.Parallel()

	var cfg *struct{ X int }
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
}

func TestMustLoadPanics(t *testing.T) {
	type badSettings2 struct {
		Port int `env:"TEST_BAD_PORT" envDefault:"80"`
	}

	t.Setenv("TEST_BAD_PORT", "nope")

	assert.Panics(t, func() {
		var cfg badSettings2
		config.MustLoad(&cfg)
	})
}
