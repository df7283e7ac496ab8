package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv reads the given .env files into the process environment.
// Variables already set in the environment win over file values.
// With no arguments it reads ./.env.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v based on its `env` struct tags.
// The default .env file is read once per process if it exists.
//
// Example:
//
//	type CacheConfig struct {
//		Capacity int `env:"LRU_CAPACITY" envDefault:"3"`
//		Shards   int `env:"LRU_SHARDS" envDefault:"1"`
//	}
//
//	var cfg CacheConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	return LoadPrefixed(v, "")
}

// LoadPrefixed works like Load but only considers variables starting with
// prefix, e.g. "LRU_" with a tag `env:"CAPACITY"` reads LRU_CAPACITY.
func LoadPrefixed[T any](v *T, prefix string) error {
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
