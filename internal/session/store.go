package session

import "github.com/clipbridge/clipbridge/internal/models"

// Store persists auth state so a new process does not force a fresh login.
// Each field is an independently overwritable key; partial writes are
// acceptable and last-write-wins across concurrent processes.
type Store interface {
	// Load returns the persisted session. It never fails: absent or
	// unreadable keys yield zero values in the snapshot.
	Load() models.Session
	// Save persists every field of the provided snapshot.
	Save(session models.Session) error
	// Clear removes every persisted key in one synchronous pass.
	Clear() error

	// SaveToken overwrites only the bearer token key.
	SaveToken(token string) error
	// SaveUser overwrites only the serialized user key.
	SaveUser(user models.User) error
	// SaveConnection stores the platform token and marks the account connected.
	SaveConnection(token string) error
	// ClearAuth removes the token and user keys, leaving connection state alone.
	ClearAuth() error
	// ClearConnection removes the platform token and connected flag.
	ClearConnection() error
}
