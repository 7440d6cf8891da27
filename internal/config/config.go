// internal/config/config.go
//
// Application configuration from environment variables (after an optional
// .env file), with development defaults.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/codenames/internal/seq"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Session SessionConfig
	Logging LoggingConfig
	DBPath  string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string
	Env          string // "development" or "production"
	ClientOrigin string
}

// GameConfig holds board generation configuration
type GameConfig struct {
	WordsFile string // empty selects the embedded list
	WordSeed  int64
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret     string
	TTL        time.Duration // cookie lifetime and idle eviction age
	SweepEvery time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables with defaults.
// Call godotenv.Load first to pick up a .env file.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			Env:          getEnv("ENV", "development"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		},
		Game: GameConfig{
			WordsFile: getEnv("WORDS_FILE", ""),
			WordSeed:  getEnvInt64("WORD_SEED", seq.DefaultSeed),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev_secret_change_me"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			SweepEvery: time.Duration(getEnvInt("SESSION_SWEEP_MINUTES", 10)) * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DBPath: getEnv("DB_PATH", "./data/codenames.db"),
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
