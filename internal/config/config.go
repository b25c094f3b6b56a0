package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/logger"
)

type Config struct {
	Addr                 string        `env:"ADDR" env-default:":8080"`
	DBPath               string        `env:"DB_PATH" env-default:"file:wordflash.db"`
	LogLevel             string        `env:"LOG_LEVEL" env-default:"INFO"`
	Timezone             string        `env:"TIMEZONE" env-default:"UTC"`
	RatingDebounce       time.Duration `env:"RATING_DEBOUNCE" env-default:"1s"`
	StatusTransition     string        `env:"STATUS_TRANSITION" env-default:"view"`
	RandomFutureFraction float64       `env:"RANDOM_FUTURE_FRACTION" env-default:"0.1"`
	ImportWorkerCount    int           `env:"IMPORT_WORKER_COUNT" env-default:"2"`
	ImportQueueSize      int           `env:"IMPORT_QUEUE_SIZE" env-default:"16"`
	SnapshotAt           string        `env:"SNAPSHOT_AT" env-default:"23:55"`
	VocabularyPath       string        `env:"VOCABULARY_PATH"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying the defaults declared on Config.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.StatusTransition = strings.ToLower(strings.TrimSpace(cfg.StatusTransition))
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known location", c.Timezone))
	}
	if c.RatingDebounce < 0 {
		errs = append(errs, errors.New("RATING_DEBOUNCE cannot be negative"))
	}
	switch flashcard.Transition(strings.ToLower(c.StatusTransition)) {
	case flashcard.TransitionOnView, flashcard.TransitionOnRating:
	default:
		errs = append(errs, fmt.Errorf("STATUS_TRANSITION must be %q or %q, got %q",
			flashcard.TransitionOnView, flashcard.TransitionOnRating, c.StatusTransition))
	}
	if c.RandomFutureFraction < 0 || c.RandomFutureFraction > 1 {
		errs = append(errs, fmt.Errorf("RANDOM_FUTURE_FRACTION must be within [0, 1], got %v", c.RandomFutureFraction))
	}
	if c.ImportWorkerCount <= 0 {
		errs = append(errs, errors.New("IMPORT_WORKER_COUNT must be positive"))
	}
	if c.ImportQueueSize <= 0 {
		errs = append(errs, errors.New("IMPORT_QUEUE_SIZE must be positive"))
	}
	if _, err := time.Parse("15:04", c.SnapshotAt); err != nil {
		errs = append(errs, fmt.Errorf("SNAPSHOT_AT must be HH:MM, got %q", c.SnapshotAt))
	}
	if c.VocabularyPath != "" {
		if _, err := os.Stat(c.VocabularyPath); err != nil {
			errs = append(errs, fmt.Errorf("VOCABULARY_PATH %q: %v", c.VocabularyPath, err))
		}
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Policy builds the scheduling policy selected by the configuration.
func (c Config) Policy() flashcard.Policy {
	p := flashcard.DefaultPolicy()
	if t := flashcard.Transition(strings.ToLower(c.StatusTransition)); t == flashcard.TransitionOnRating {
		p.Transition = t
	}
	return p
}
