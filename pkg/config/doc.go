// Package config loads application configuration from environment variables
// into Go structs.
//
// It wraps `github.com/joho/godotenv` for .env files and
// `github.com/caarlos0/env/v11` for struct tag parsing:
//
//	type Config struct {
//		Capacity  int    `env:"LRU_CAPACITY" envDefault:"3"`
//		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//		Scenario  string `env:"LRU_SCENARIO"`
//	}
//
//	if err := config.LoadEnv("./config/.env"); err != nil {
//		log.Fatalf("loading env: %v", err)
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// The default .env in the working directory is read once, on the first Load,
// and silently skipped when missing. Files passed to LoadEnv must exist.
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
