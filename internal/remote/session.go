package remote

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session supplies the bearer credential and can be invalidated after the
// remote store rejects it.
type Session interface {
	Token() string
	Reset() error
}

// StaticSession holds a token in memory.
type StaticSession struct {
	mu     sync.Mutex
	token  string
	resets int
}

func NewStaticSession(token string) *StaticSession {
	return &StaticSession{token: token}
}

func (s *StaticSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *StaticSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.resets++
	return nil
}

// Resets returns how many times the session was reset.
func (s *StaticSession) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// FileSession keeps the token in a file readable only by the user.
type FileSession struct {
	mu   sync.Mutex
	path string
}

func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// Token returns the stored token, or "" when there is none.
func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save stores a token.
func (s *FileSession) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Reset deletes the stored token.
func (s *FileSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
