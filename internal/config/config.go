package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"data/guessword.db"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	RedisURL        string        `env:"REDIS_URL"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	LeaderboardSize int           `env:"LEADERBOARD_SIZE" envDefault:"10"`
	SeedWords       bool          `env:"SEED_WORDS" envDefault:"true"`
}

// Load reads the environment. Variables from a .env file in the working
// directory are applied first without overriding ones already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	if cfg.LeaderboardSize <= 0 {
		return nil, fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", cfg.LeaderboardSize)
	}
	return &cfg, nil
}
