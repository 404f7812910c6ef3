package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetConfigReadsEnvironment(t *testing.T) {
	t.Setenv("USE_REAL_JOBS", "yes")
	t.Setenv("ADZUNA_APP_ID", "app")
	t.Setenv("ADZUNA_APP_KEY", "secret")
	t.Setenv("ADZUNA_COUNTRY", "")

	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Jobs.Enabled != "yes" || config.Jobs.AppID != "app" || config.Jobs.AppKey != "secret" {
		t.Fatalf("unexpected jobs config: %+v", config.Jobs)
	}
	if config.Jobs.Timeout != 10*time.Second {
		t.Fatalf("expected default jobs timeout, got %s", config.Jobs.Timeout)
	}
	if config.AI.Concurrency != 5 || config.AI.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected ai defaults: %+v %+v", config.AI, config.AI.Gemini)
	}

	jobs, closeCache := newJobsClient(context.Background(), config.Jobs, zap.NewNop())
	defer closeCache()
	if !jobs.Enabled() {
		t.Fatalf("expected job search to be enabled")
	}
}

func TestNewJobsClientReadsKeyFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "adzuna.key")
	if err := os.WriteFile(keyFile, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	jobs, closeCache := newJobsClient(context.Background(), &JobsConfig{
		Enabled:    "on",
		AppID:      "app",
		AppKeyFile: keyFile,
	}, zap.NewNop())
	defer closeCache()

	if !jobs.Enabled() {
		t.Fatalf("expected job search to be enabled with a key file")
	}
}

func TestNewCallerWithoutKeyFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	core, observed := observer.New(zapcore.WarnLevel)
	caller := newCaller(context.Background(), &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}, zap.New(core))

	if caller != nil {
		t.Fatalf("expected nil caller, got %T", caller)
	}
	if observed.FilterField(zap.String("hint", "set ai.gemini.api-key (GEMINI_API_KEY) or ai.gemini.api-key-file (GEMINI_API_KEY_FILE)")).Len() != 1 {
		t.Fatalf("expected a warning with a hint, got %v", observed.All())
	}

	if newCaller(context.Background(), &AIConfig{Enabled: false, Gemini: &GeminiConfig{}}, zap.NewNop()) != nil {
		t.Fatalf("expected nil caller when ai is disabled")
	}
}
