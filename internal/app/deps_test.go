package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipbridge/clipbridge/internal/config"
	"github.com/clipbridge/clipbridge/internal/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		APIBaseURL:     "http://localhost:3000",
		CallbackPort:   8750,
		StateDir:       filepath.Join(t.TempDir(), "state"),
		RequestsPerMin: 60,
		RequestBurst:   10,
	}
}

func TestBuildDependenciesWiring(t *testing.T) {
	cfg := testConfig(t)
	deps, err := buildDependencies(cfg, slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
	if err != nil {
		t.Fatalf("buildDependencies: %v", err)
	}

	if deps.client.BaseURL() != cfg.APIBaseURL {
		t.Fatalf("client base URL = %q, want %q", deps.client.BaseURL(), cfg.APIBaseURL)
	}
	if deps.lister == nil {
		t.Fatal("expected a caching lister")
	}
	if _, err := os.Stat(cfg.StateDir); err != nil {
		t.Fatalf("state directory not created: %v", err)
	}

	// The store handed to the orchestrator is the file store rooted at the
	// configured directory.
	if err := deps.store.SaveToken("tok-1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got := deps.orchestrator.Session().Token; got != "tok-1" {
		t.Fatalf("orchestrator session token = %q, want %q", got, "tok-1")
	}
	if _, err := os.Stat(filepath.Join(cfg.StateDir, "token")); err != nil {
		t.Fatalf("token not persisted under state dir: %v", err)
	}
}

func TestBuildDependenciesRejectsUnusableStateDir(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(filepath.Dir(cfg.StateDir), "blocker")
	cfg.StateDir = filepath.Join(blocker, "state")
	// A file where the parent directory should be makes MkdirAll fail.
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	if _, err := buildDependencies(cfg, slog.New(slog.NewTextHandler(&strings.Builder{}, nil))); err == nil {
		t.Fatal("expected an error for an unusable state directory")
	}
}

func TestPrintSession(t *testing.T) {
	var out bytes.Buffer
	printSession(&out, models.Session{})
	if !strings.Contains(out.String(), "Not logged in.") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	printSession(&out, models.Session{
		Token:            "tok",
		User:             &models.User{Name: "Ada", Email: "ada@example.com"},
		YouTubeConnected: true,
	})
	got := out.String()
	if !strings.Contains(got, "Logged in as Ada <ada@example.com>") {
		t.Fatalf("output = %q", got)
	}
	if !strings.Contains(got, "YouTube account connected.") {
		t.Fatalf("output = %q", got)
	}
}
