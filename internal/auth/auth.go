// Package auth provides the token sources used to authenticate API requests.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/expense-manager/expense-manager-go/internal/types"
	"github.com/pkg/errors"
)

// StaticToken is a fixed bearer token
type StaticToken string

// Token returns the token
func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// EnvToken reads the token from an environment variable on every call
type EnvToken string

// Token returns the variable's trimmed value, or "" when unset
func (e EnvToken) Token() (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// tokenFile is the on-disk format of a FileStore
type tokenFile struct {
	Token string `json:"token"`
}

// FileStore persists a token as JSON on disk.
// A missing file means no token.
type FileStore struct {
	path   string
	logger types.Logger
	mu     sync.Mutex
}

// NewFileStore creates a token store at path
func NewFileStore(path string, logger types.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the file location
func (s *FileStore) Path() string {
	return s.path
}

// Token reads the stored token
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read token file")
	}

	var f tokenFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", errors.Wrap(err, "failed to parse token file")
	}

	return f.Token, nil
}

// Save writes token to disk with owner-only permissions
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create directory if needed
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrap(err, "failed to create token directory")
	}

	data, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal token")
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write token file")
	}

	if s.logger != nil {
		s.logger.Info("Token saved", "path", s.path)
	}

	return nil
}

// Clear removes the token file. Clearing a missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove token file")
	}
	return nil
}
