package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

var _ SessionStore = (*MemoryStore)(nil)
var _ SessionStore = (*FileStore)(nil)

// MemoryStore keeps the session in process memory only. This is the
// "tab-local" scope: the session dies with the process.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
	present bool
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(session Session) error {
	if session.IsZero() {
		return ErrNotAuthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	m.present = true
	return nil
}

func (m *MemoryStore) Load() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return Session{}, false
	}
	return m.session, true
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.present = false
	return nil
}

// FileStore persists the session as a JSON file under a profile directory.
// This is the "profile-wide" scope: the session survives process restarts.
// It is the default store.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger Logger
}

// NewFileStore creates a file-backed store writing to path. The parent
// directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used for degraded-load reporting.
func (f *FileStore) WithLogger(logger Logger) *FileStore {
	if logger != nil {
		f.logger = logger
	}
	return f
}

func (f *FileStore) Save(session Session) error {
	if session.IsZero() {
		return ErrNotAuthenticated
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never leaves a half session.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load returns the persisted session. Corrupt or partial state is treated as
// "no session" and cleared; decode failures never surface to the caller.
func (f *FileStore) Load() (Session, bool) {
	f.mu.Lock()
	data, err := os.ReadFile(f.path)
	f.mu.Unlock()
	if err != nil {
		return Session{}, false
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil || session.IsZero() {
		f.logger.Warn("discarding corrupt session state at %s", f.path)
		_ = f.Clear()
		return Session{}, false
	}

	return session, true
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DefaultSessionPath returns the conventional profile-wide session location.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".notas", "session.json")
	}
	return filepath.Join(home, ".notas", "session.json")
}
