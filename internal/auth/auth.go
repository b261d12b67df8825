// Package auth keeps the session's bearer token. The TODO_TOKEN environment
// variable wins over the stored credential.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// EnvVar overrides the stored token.
const EnvVar = "TODO_TOKEN"

const credKey = "credentials"

type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (JWT or server-provided)
}

// Store reads and writes the credential under a directory.
type Store struct {
	d      *diskv.Diskv
	getenv func(string) string
}

// Open returns a store rooted at dir. Nothing is created until Set.
func Open(dir string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 0,
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		getenv: os.Getenv,
	}
}

// Get returns the current token, or nil when not logged in.
func (s *Store) Get() (*TokenInfo, error) {
	if env := strings.TrimSpace(s.getenv(EnvVar)); env != "" {
		return &TokenInfo{Token: StripBearer(env), Source: "env"}, nil
	}
	b, err := s.d.Read(credKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = StripBearer(ti.Token)
	return &ti, nil
}

// Set stores token, replacing any previous one.
func (s *Store) Set(token string, expires *time.Time) error {
	token = StripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := s.d.Write(credKey, b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the stored token. A missing token is not an error.
func (s *Store) Delete() error {
	if err := s.d.Erase(credKey); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Token implements api.Credentials. Any failure to read means no token.
func (s *Store) Token() string {
	ti, err := s.Get()
	if err != nil || ti == nil {
		return ""
	}
	return ti.Token
}

func StripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}

// Claims decodes the payload of a JWT without verifying it. ok is false for
// opaque tokens.
func Claims(token string) (payload string, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	p, err := decodeB64URL(parts[1])
	if err != nil {
		return "", false
	}
	return p, true
}

func decodeB64URL(s string) (string, error) {
	dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
