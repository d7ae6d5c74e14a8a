package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/session"
)

type savedSession struct {
	Tokens domain.AuthTokens `json:"tokens"`
	User   domain.User       `json:"user"`
}

// loadSession restores a saved login into store. A missing file is not an error.
func loadSession(path string, store *session.Store) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}
	var s savedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	if s.Tokens.AccessToken != "" {
		store.AddAuth(s.Tokens, s.User)
	}
	return nil
}

// saveSession writes the signed-in user and tokens, readable by the owner only.
func saveSession(path string, store *session.Store) error {
	user, ok := store.User()
	if !ok {
		return errors.New("not signed in")
	}
	raw, err := json.MarshalIndent(savedSession{Tokens: store.Tokens(), User: user}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	// CreateTemp opens with 0600, and the rename replaces any older file
	// together with its mode.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
