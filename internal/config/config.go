// Package config resolves runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhisek/lexiz/internal/session"
)

// Config holds runtime settings.
type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string

	// VocabPath is the vocabulary file (.json or .xlsx).
	VocabPath string

	// RequeueMode selects the requeue policy.
	// Values: "fixed", "random", "off"
	RequeueMode string

	// RequeueInterval is the interval for the fixed policy. Default: 5.
	RequeueInterval int

	// MixedQuestions is the number of questions in a mixed session. Default: 10.
	MixedQuestions int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VocabPath:       "vocabulary.json",
		RequeueMode:     "fixed",
		RequeueInterval: session.DefaultRequeueInterval,
		MixedQuestions:  session.RoomQuestions,
	}
}

// LoadDotEnv loads variables from the given files, or ".env" when none
// are named. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or malformed values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LEXIZ_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("LEXIZ_VOCAB"); p != "" {
		cfg.VocabPath = p
	}
	if m := os.Getenv("LEXIZ_REQUEUE"); m != "" {
		cfg.RequeueMode = m
	}
	if n, ok := positiveInt("LEXIZ_REQUEUE_INTERVAL"); ok {
		cfg.RequeueInterval = n
	}
	if n, ok := positiveInt("LEXIZ_MIXED_COUNT"); ok {
		cfg.MixedQuestions = n
	}

	return cfg
}

// Policy returns the requeue policy for standard sessions.
func (c Config) Policy() (session.RequeuePolicy, error) {
	return session.ParsePolicy(c.RequeueMode, c.RequeueInterval)
}

// Validate checks that the requeue settings are usable.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.MixedQuestions <= 0 {
		return fmt.Errorf("LEXIZ_MIXED_COUNT must be positive, got %d", c.MixedQuestions)
	}
	return nil
}

func positiveInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s=%q: want a positive integer\n", key, v)
		return 0, false
	}
	return n, true
}
