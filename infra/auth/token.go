package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// TokenProvider supplies an access token for API authentication.
// An empty token means the request is sent anonymously.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// Anonymous never supplies a token.
type Anonymous struct{}

func (Anonymous) AccessToken() (string, error) { return "", nil }

// ProviderFor returns a FileTokenProvider when a token file exists at path
// and Anonymous otherwise.
func ProviderFor(path string) TokenProvider {
	if strings.TrimSpace(path) == "" {
		return Anonymous{}
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Anonymous{}
	}
	return NewFileTokenProvider(path)
}
