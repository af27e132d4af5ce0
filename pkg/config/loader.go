package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the configuration struct from environment variables based on
// its `env` field tags. The default .env file, if present, is loaded into the
// process environment once per process before the first parse.
//
// Example:
//
//	type DiagnosticsConfig struct {
//		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//		LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
//	}
//
//	var cfg DiagnosticsConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; a missing file is not an error.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure, for configuration the
// embedding application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
