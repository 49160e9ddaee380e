package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/lexiz/internal/session"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LEXIZ_DB", "LEXIZ_VOCAB", "LEXIZ_REQUEUE", "LEXIZ_REQUEUE_INTERVAL", "LEXIZ_MIXED_COUNT"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RequeueMode != "fixed" {
		t.Errorf("RequeueMode = %q, want fixed", cfg.RequeueMode)
	}
	if cfg.RequeueInterval != 5 {
		t.Errorf("RequeueInterval = %d, want 5", cfg.RequeueInterval)
	}
	if cfg.MixedQuestions != 10 {
		t.Errorf("MixedQuestions = %d, want 10", cfg.MixedQuestions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXIZ_DB", "/tmp/x.db")
	t.Setenv("LEXIZ_VOCAB", "words.xlsx")
	t.Setenv("LEXIZ_REQUEUE", "random")
	t.Setenv("LEXIZ_REQUEUE_INTERVAL", "3")
	t.Setenv("LEXIZ_MIXED_COUNT", "20")

	cfg := ConfigFromEnv()
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.VocabPath != "words.xlsx" {
		t.Errorf("VocabPath = %q", cfg.VocabPath)
	}
	if cfg.RequeueMode != "random" {
		t.Errorf("RequeueMode = %q", cfg.RequeueMode)
	}
	if cfg.RequeueInterval != 3 {
		t.Errorf("RequeueInterval = %d, want 3", cfg.RequeueInterval)
	}
	if cfg.MixedQuestions != 20 {
		t.Errorf("MixedQuestions = %d, want 20", cfg.MixedQuestions)
	}
}

func TestConfigFromEnvIgnoresBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXIZ_REQUEUE_INTERVAL", "abc")
	t.Setenv("LEXIZ_MIXED_COUNT", "-4")

	cfg := ConfigFromEnv()
	if cfg.RequeueInterval != 5 {
		t.Errorf("RequeueInterval = %d, want default 5", cfg.RequeueInterval)
	}
	if cfg.MixedQuestions != 10 {
		t.Errorf("MixedQuestions = %d, want default 10", cfg.MixedQuestions)
	}
}

func TestPolicy(t *testing.T) {
	tests := []struct {
		mode     string
		interval int
		want     session.RequeuePolicy
		wantErr  bool
	}{
		{"fixed", 5, session.FixedInterval(5), false},
		{"fixed", 3, session.FixedInterval(3), false},
		{"off", 5, session.NoRequeue{}, false},
		{"bogus", 5, nil, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.RequeueMode = tt.mode
		cfg.RequeueInterval = tt.interval
		got, err := cfg.Policy()
		if (err != nil) != tt.wantErr {
			t.Errorf("Policy(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Policy(%q) = %#v, want %#v", tt.mode, got, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.RequeueMode = "random"
	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy(random): %v", err)
	}
	if _, ok := p.(session.RandomInterval); !ok {
		t.Errorf("Policy(random) = %T, want RandomInterval", p)
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequeueMode = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown requeue mode")
	}

	cfg = DefaultConfig()
	cfg.MixedQuestions = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero mixed questions")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LEXIZ_VOCAB")
	os.Unsetenv("LEXIZ_MIXED_COUNT")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "LEXIZ_VOCAB=from-dotenv.json\nLEXIZ_MIXED_COUNT=12\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEXIZ_MIXED_COUNT", "7")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LEXIZ_VOCAB") })

	cfg := ConfigFromEnv()
	if cfg.VocabPath != "from-dotenv.json" {
		t.Errorf("VocabPath = %q, want from-dotenv.json", cfg.VocabPath)
	}
	if cfg.MixedQuestions != 7 {
		t.Errorf("MixedQuestions = %d, want 7 (env wins over .env)", cfg.MixedQuestions)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) = %v, want nil", err)
	}
}
