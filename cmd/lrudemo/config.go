package main

// Config is read from the environment and an optional .env file.
type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	// Scenario is a path to a YAML script; the built-in script runs when empty.
	Scenario string `env:"LRU_SCENARIO"`

	Workload WorkloadConfig `envPrefix:"LRU_"`
}

// WorkloadConfig sizes the concurrent read-through workload.
type WorkloadConfig struct {
	Capacity   int `env:"CAPACITY" envDefault:"1024"`
	Shards     int `env:"SHARDS" envDefault:"8"`
	Workers    int `env:"WORKERS" envDefault:"8"`
	Operations int `env:"OPERATIONS" envDefault:"20000"`
	KeySpace   int `env:"KEY_SPACE" envDefault:"4096"`
}
