package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipbridge/clipbridge/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved := models.Session{
		Token:            "token-123",
		User:             &models.User{Sub: "sub-1", Email: "user@example.com", Name: "Test User", Picture: "p.png"},
		YouTubeConnected: true,
		YouTubeToken:     "yt-token",
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := store.Load()
	if loaded.Token != saved.Token {
		t.Fatalf("token = %q, want %q", loaded.Token, saved.Token)
	}
	if loaded.User == nil || *loaded.User != *saved.User {
		t.Fatalf("user = %+v, want %+v", loaded.User, saved.User)
	}
	if !loaded.YouTubeConnected {
		t.Fatal("expected connected flag to survive the round trip")
	}
	if loaded.YouTubeToken != saved.YouTubeToken {
		t.Fatalf("youtube token = %q, want %q", loaded.YouTubeToken, saved.YouTubeToken)
	}
	if !loaded.IsAuthenticated() {
		t.Fatal("expected loaded session to be authenticated")
	}
}

func TestFileStoreLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded := store.Load()
	if loaded.Token != "" || loaded.User != nil || loaded.YouTubeConnected || loaded.YouTubeToken != "" {
		t.Fatalf("expected empty session, got %+v", loaded)
	}
	if loaded.IsAuthenticated() {
		t.Fatal("empty session must not be authenticated")
	}
}

func TestFileStoreMalformedUserTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("token-123"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write user: %v", err)
	}

	loaded := store.Load()
	if loaded.Token != "token-123" {
		t.Fatalf("token = %q, want token-123", loaded.Token)
	}
	if loaded.User != nil {
		t.Fatalf("expected corrupt user record to read as absent, got %+v", loaded.User)
	}
	if loaded.IsAuthenticated() {
		t.Fatal("session without a user must not be authenticated")
	}
}

func TestFileStoreClearRemovesEveryKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Save(models.Session{
		Token:            "token-123",
		User:             &models.User{Sub: "sub-1"},
		YouTubeConnected: true,
		YouTubeToken:     "yt-token",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty state directory after clear, found %d entries", len(entries))
	}
}

func TestFileStorePartialWrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveToken("token-123"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := store.SaveConnection("yt-token"); err != nil {
		t.Fatalf("save connection: %v", err)
	}

	loaded := store.Load()
	if loaded.Token != "token-123" {
		t.Fatalf("token = %q", loaded.Token)
	}
	if !loaded.YouTubeConnected || loaded.YouTubeToken != "yt-token" {
		t.Fatalf("expected connection persisted, got %+v", loaded)
	}

	if err := store.ClearAuth(); err != nil {
		t.Fatalf("clear auth: %v", err)
	}
	loaded = store.Load()
	if loaded.Token != "" {
		t.Fatal("expected token removed by ClearAuth")
	}
	if !loaded.YouTubeConnected {
		t.Fatal("ClearAuth must leave connection state alone")
	}

	if err := store.ClearConnection(); err != nil {
		t.Fatalf("clear connection: %v", err)
	}
	loaded = store.Load()
	if loaded.YouTubeConnected || loaded.YouTubeToken != "" {
		t.Fatalf("expected connection cleared, got %+v", loaded)
	}
}
