package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

// env is everything a command needs: settings, the open store, the
// loaded vocabulary and the study history.
type env struct {
	cfg   config.Config
	store *store.Store
	words []vocab.Item
	book  *stats.Book
}

// resolveConfig merges environment settings with the persistent flags.
// Flags take priority.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("vocab"); p != "" {
		cfg.VocabPath = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / LEXIZ_DB, then the
// default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database without loading the vocabulary.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}

// openEnv opens the store, loads the study history and the vocabulary.
func openEnv(cmd *cobra.Command) (*env, error) {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	records, err := st.StatsRepo().LoadAll(cmd.Context())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load stats: %w", err)
	}

	words, err := vocab.LoadFile(cfg.VocabPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load vocabulary %s: %w", cfg.VocabPath, err)
	}

	return &env{
		cfg:   cfg,
		store: st,
		words: words,
		book:  stats.NewBook(records...),
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

func (e *env) appOptions() app.Options {
	return app.Options{
		Words:     e.words,
		Book:      e.book,
		StatsRepo: e.store.StatsRepo(),
		EventRepo: e.store.EventRepo(),
		Config:    e.cfg,
	}
}

func (e *env) quizDeps() quiz.Deps {
	return quiz.Deps{
		Words:     e.words,
		Book:      e.book,
		StatsRepo: e.store.StatsRepo(),
		EventRepo: e.store.EventRepo(),
		Config:    e.cfg,
	}
}
