package i18n

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoLanguageState is returned when language state is requested from a
	// context that was never given one.
	ErrNoLanguageState = errors.New("i18n: language state used outside of a language provider")

	// ErrUnsupportedLanguage is reported when setting a language outside the supported set.
	ErrUnsupportedLanguage = errors.New("i18n: unsupported language")
)

// Store persists the chosen language between visits.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}

// PersistResult reports the outcome of a best-effort language save.
// A failed save never undoes the in-memory change.
type PersistResult struct {
	Err error
}

// OK reports whether the value was persisted.
func (r PersistResult) OK() bool {
	return r.Err == nil
}

// State holds the current language for one visitor.
type State struct {
	mu    sync.RWMutex
	lang  Language
	store Store
}

// NewState reads the persisted language once. A missing, unreadable or
// unsupported value leaves the state at DefaultLanguage.
func NewState(ctx context.Context, store Store) *State {
	s := &State{lang: DefaultLanguage, store: store}
	if store == nil {
		return s
	}

	value, err := store.Load(ctx)
	if err == nil && IsLanguage(value) {
		s.lang = Language(value)
	}
	return s
}

// Language returns the current language.
func (s *State) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage switches the current language and then tries to persist it.
// Unsupported languages are rejected and leave the state unchanged.
func (s *State) SetLanguage(ctx context.Context, lang Language) PersistResult {
	if !IsLanguage(string(lang)) {
		return PersistResult{Err: fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)}
	}

	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()

	if s.store == nil {
		return PersistResult{}
	}
	if err := s.store.Save(ctx, string(lang)); err != nil {
		return PersistResult{Err: fmt.Errorf("persisting language: %w", err)}
	}
	return PersistResult{}
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.Mutex
	value string
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

// NewMemoryStore returns a store preloaded with value.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value}
}

// Load returns the stored value.
func (m *MemoryStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

// Save stores value unless SaveErr is set.
func (m *MemoryStore) Save(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.value = value
	return nil
}

// Value returns the stored value.
func (m *MemoryStore) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

type contextKey struct{}

// WithState returns a copy of ctx carrying s.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the language state carried by ctx.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(contextKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoLanguageState
	}
	return s, nil
}

// MustFromContext is like FromContext but panics outside a language provider.
func MustFromContext(ctx context.Context) *State {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}

// LanguageFromContext returns the current language, or ErrNoLanguageState.
func LanguageFromContext(ctx context.Context) (Language, error) {
	s, err := FromContext(ctx)
	if err != nil {
		return "", err
	}
	return s.Language(), nil
}
