// Package credential persists the single API key the app needs.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/nanoclass/internal/store"
)

// KeyName is the fixed settings key the API key is stored under.
const KeyName = "GEMINI_API_KEY"

// ErrBlankKey is returned when saving an empty or whitespace-only key.
var ErrBlankKey = errors.New("API key is blank")

// Source says where a resolved key came from.
type Source string

const (
	SourceNone   Source = ""
	SourceEnv    Source = "environment"
	SourceStored Source = "stored"
)

// Store reads and writes the API key in the settings table.
type Store struct {
	settings store.SettingsRepo
}

// New returns a Store backed by settings.
func New(settings store.SettingsRepo) *Store {
	return &Store{settings: settings}
}

// Load returns the stored key, if any.
func (s *Store) Load(ctx context.Context) (string, bool, error) {
	v, ok, err := s.settings.Get(ctx, KeyName)
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	if strings.TrimSpace(v) == "" {
		return "", false, nil
	}
	return v, ok, nil
}

// Save trims and stores key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrBlankKey
	}
	if err := s.settings.Set(ctx, KeyName, key); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear forgets the stored key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.settings.Delete(ctx, KeyName); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Resolve picks the key to start with. A key supplied by the environment
// wins over the stored one; neither means the user must enter one.
func (s *Store) Resolve(ctx context.Context, envKey string) (string, Source, error) {
	if k := strings.TrimSpace(envKey); k != "" {
		return k, SourceEnv, nil
	}
	k, ok, err := s.Load(ctx)
	if err != nil {
		return "", SourceNone, err
	}
	if !ok {
		return "", SourceNone, nil
	}
	return k, SourceStored, nil
}
