package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

const sessionFileName = "session.toml"

// Session is the persisted login state of the terminal client.
type Session struct {
	Token     string `toml:"token"`
	UserID    string `toml:"user_id"`
	Email     string `toml:"email"`
	Role      string `toml:"role"`
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

func (s Session) IsRecruiter() bool {
	return s.Role == "recruiter"
}

func (s Session) IsStudent() bool {
	return s.Role == "student"
}

// SessionStore keeps one Session in a TOML file readable only by the owner.
type SessionStore struct {
	path string
	mu   sync.Mutex
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath returns <user config dir>/job-board/session.toml.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "job-board", sessionFileName), nil
}

func (s *SessionStore) Path() string {
	return s.path
}

// Load returns an empty Session when no file exists yet.
func (s *SessionStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess Session
	if _, err := toml.DecodeFile(s.path, &sess); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("decode session file: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	if err := toml.NewEncoder(file).Encode(sess); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode session: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
