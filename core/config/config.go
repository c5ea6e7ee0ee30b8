package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config: nil config pointer")

var (
	dotenvOnce sync.Once
	loaded     sync.Map // reflect.Type → parsed struct value
)

// Load populates cfg from environment variables using `env` struct tags.
// A .env file in the working directory is loaded once per process, if
// present. Each configuration type is parsed once and cached; subsequent
// calls for the same type return the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// Missing .env is not an error; real environments set vars directly.
		_ = godotenv.Load()
	})

	t := reflect.TypeOf(*cfg)
	if v, ok := loaded.Load(t); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	v, _ := loaded.LoadOrStore(t, *cfg)
	*cfg = v.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup when
// a missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
