package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// Session is in-process, session-scoped token storage. It is the
// short-lived tier and lives as long as the process.
type Session struct {
	mu    sync.RWMutex
	token string
}

// Name implements Source.
func (s *Session) Name() string { return "session" }

// Lookup implements Source.
func (s *Session) Lookup() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set stores tok for the rest of the session.
func (s *Session) Set(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
}

// Clear forgets the session token.
func (s *Session) Clear() { s.Set("") }

// Env reads the token from an environment variable.
type Env struct {
	Key string
}

// Name implements Source.
func (e Env) Name() string { return "env:" + e.Key }

// Lookup implements Source.
func (e Env) Lookup() (string, bool) {
	v, ok := os.LookupEnv(e.Key)
	return v, ok && v != ""
}

// File reads a token persisted on disk in oauth2.Token JSON format. It is
// the long-lived tier.
type File struct {
	Path string
	// OnError, if set, receives read and decode failures. They are otherwise
	// treated as "no token".
	OnError func(error)
}

// Name implements Source.
func (f File) Name() string { return "file" }

// Lookup implements Source.
func (f File) Lookup() (string, bool) {
	tok, err := LoadTokenFile(f.Path)
	if err != nil {
		if f.OnError != nil {
			f.OnError(err)
		}
		return "", false
	}
	if tok == nil || tok.AccessToken == "" {
		return "", false
	}
	return tok.AccessToken, true
}

// DefaultTokenFile returns ~/.healthsync/auth/token.json.
func DefaultTokenFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".healthsync", "auth", "token.json"), nil
}

// LoadTokenFile reads a token file. A missing file yields nil, nil.
func LoadTokenFile(path string) (*oauth2.Token, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file %s: %w", path, err)
	}
	return &tok, nil
}
