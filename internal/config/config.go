package config

import "os"

type Config struct {
	Port     string
	Env      string
	LogLevel string
}

// Load reads the process configuration from the environment, applying
// defaults for anything unset.
func Load() *Config {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	return &Config{
		Port:     port,
		Env:      env,
		LogLevel: level,
	}
}
