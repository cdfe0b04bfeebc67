package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds game settings. Environment variables set the defaults and
// command-line flags override them.
type Config struct {
	Rows            int           `env:"PAIRS_ROWS" envDefault:"4"`
	Columns         int           `env:"PAIRS_COLUMNS" envDefault:"4"`
	Seed            int64         `env:"PAIRS_SEED" envDefault:"0"`
	FlipDuration    time.Duration `env:"PAIRS_FLIP_DURATION" envDefault:"500ms"`
	RevealDelay     time.Duration `env:"PAIRS_REVEAL_DELAY" envDefault:"500ms"`
	AwaitMatchSound bool          `env:"PAIRS_AWAIT_MATCH_SOUND" envDefault:"true"`
	Bell            bool          `env:"PAIRS_BELL" envDefault:"false"`
	LogFile         string        `env:"PAIRS_LOG_FILE"`
	Debug           bool          `env:"PAIRS_DEBUG" envDefault:"false"`
	Faces           []string      `env:"PAIRS_FACES" envSeparator:","`
}

// Load reads configuration from the environment. If envFile is set it is
// loaded first; a missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would make a round impossible to play.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Columns < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	}
	if c.FlipDuration <= 0 {
		return fmt.Errorf("flip duration must be positive, got %s", c.FlipDuration)
	}
	if c.RevealDelay <= 0 {
		return fmt.Errorf("reveal delay must be positive, got %s", c.RevealDelay)
	}
	return nil
}
