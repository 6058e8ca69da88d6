// Package theme persists the light/dark display preference.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/notepad/internal/storage"
)

// Key is the persistence key of the theme flag.
const Key = "theme"

// Theme is the display theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse maps a stored value to a Theme; anything but "dark" is Light.
func Parse(s string) Theme {
	if s == string(Dark) {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	return string(t)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Flag reads and toggles the persisted theme.
type Flag struct {
	kv       storage.Provider
	onChange func(Theme)

	mu sync.Mutex
}

// NewFlag creates a flag stored in kv. onChange, if non-nil, is called with
// the new theme after every toggle.
func NewFlag(kv storage.Provider, onChange func(Theme)) *Flag {
	return &Flag{kv: kv, onChange: onChange}
}

// Current returns the persisted theme, Light when unset.
func (f *Flag) Current(ctx context.Context) (Theme, error) {
	v, _, err := f.kv.Get(ctx, Key)
	if err != nil {
		return Light, fmt.Errorf("theme: load: %w", err)
	}
	return Parse(v), nil
}

// Toggle flips the theme and persists the result.
func (f *Flag) Toggle(ctx context.Context) (Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.Current(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Opposite()
	if err := f.kv.Set(ctx, Key, next.String()); err != nil {
		return cur, fmt.Errorf("theme: save: %w", err)
	}
	if f.onChange != nil {
		f.onChange(next)
	}
	return next, nil
}
