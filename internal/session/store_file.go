package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipbridge/clipbridge/internal/models"
)

// Key file names under the state directory. One file per key so each write
// stays independent of the others.
const (
	tokenFile     = "token"
	userFile      = "user.json"
	connectedFile = "youtube_connected"
	ytTokenFile   = "youtube_token"
)

// FileStore implements Store with one file per key under a state directory.
type FileStore struct {
	dir string
}

// NewFileStore constructs a FileStore rooted at dir, creating it when absent.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("session: state directory must be provided")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the persisted session. Missing or corrupt keys are treated as
// absent rather than errors so a damaged state directory degrades to a
// logged-out session instead of wedging the client.
func (s *FileStore) Load() models.Session {
	session := models.Session{
		Token:        s.readString(tokenFile),
		YouTubeToken: s.readString(ytTokenFile),
	}
	session.YouTubeConnected = s.readString(connectedFile) == "true"

	if raw, err := os.ReadFile(s.path(userFile)); err == nil {
		var user models.User
		if err := json.Unmarshal(raw, &user); err == nil {
			session.User = &user
		}
	}

	return session
}

// Save persists every field of the snapshot. Each key is written
// independently; the first failure is returned but earlier writes stand.
func (s *FileStore) Save(session models.Session) error {
	if err := s.writeString(tokenFile, session.Token); err != nil {
		return err
	}
	if session.User != nil {
		raw, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		if err := s.writeBytes(userFile, raw); err != nil {
			return err
		}
	} else if err := s.remove(userFile); err != nil {
		return err
	}
	if session.YouTubeConnected {
		if err := s.writeString(connectedFile, "true"); err != nil {
			return err
		}
	} else if err := s.remove(connectedFile); err != nil {
		return err
	}
	if session.YouTubeToken != "" {
		return s.writeString(ytTokenFile, session.YouTubeToken)
	}
	return s.remove(ytTokenFile)
}

// Clear removes every persisted key in one synchronous pass.
func (s *FileStore) Clear() error {
	var first error
	for _, name := range []string{tokenFile, userFile, connectedFile, ytTokenFile} {
		if err := s.remove(name); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SaveToken overwrites only the bearer token key.
func (s *FileStore) SaveToken(token string) error {
	return s.writeString(tokenFile, token)
}

// SaveUser overwrites only the serialized user key.
func (s *FileStore) SaveUser(user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.writeBytes(userFile, raw)
}

// SaveConnection stores the platform token and marks the account connected.
func (s *FileStore) SaveConnection(token string) error {
	if err := s.writeString(ytTokenFile, token); err != nil {
		return err
	}
	return s.writeString(connectedFile, "true")
}

// ClearAuth removes the token and user keys, leaving connection state alone.
func (s *FileStore) ClearAuth() error {
	if err := s.remove(tokenFile); err != nil {
		return err
	}
	return s.remove(userFile)
}

// ClearConnection removes the platform token and connected flag.
func (s *FileStore) ClearConnection() error {
	if err := s.remove(ytTokenFile); err != nil {
		return err
	}
	return s.remove(connectedFile)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) readString(name string) string {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *FileStore) writeString(name, value string) error {
	if value == "" {
		return s.remove(name)
	}
	return s.writeBytes(name, []byte(value))
}

func (s *FileStore) writeBytes(name string, raw []byte) error {
	return os.WriteFile(s.path(name), raw, 0o600)
}

func (s *FileStore) remove(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
