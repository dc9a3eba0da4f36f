// Package config provides configuration loading for qviz.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"qviz/sim"
)

// MaxQubits bounds the register size the drivers will build. Programs read
// with --file or --program are held to the same bound.
const MaxQubits = sim.MaxProgramQubits

// Config holds application configuration
type Config struct {
	Qubits        int           // register size for a new circuit
	StepInterval  time.Duration // playback interval between automatic steps
	Seed          uint64        // measurement seed; 0 means time based
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Qubits:        getEnvAsInt("QVIZ_QUBITS", 2),
		StepInterval:  getEnvAsDuration("QVIZ_STEP_INTERVAL", time.Second),
		Seed:          getEnvAsUint("QVIZ_SEED", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("QVIZ_LOG_FILE", "qviz.log"),
		LogMaxSizeMB:  getEnvAsInt("QVIZ_LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvAsInt("QVIZ_LOG_MAX_BACKUPS", 3),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that values are within the ranges the drivers support
func (c *Config) Validate() error {
	if c.Qubits < 1 || c.Qubits > MaxQubits {
		return fmt.Errorf("qubit count must be between 1 and %d, got %d", MaxQubits, c.Qubits)
	}
	if c.StepInterval <= 0 {
		return fmt.Errorf("step interval must be positive, got %s", c.StepInterval)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.LogMaxSizeMB <= 0 {
		return fmt.Errorf("log max size must be positive, got %d", c.LogMaxSizeMB)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
