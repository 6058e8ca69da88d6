// Package storage defines the key-value persistence abstraction and its backends.
package storage

import "context"

// Provider is the interface for string key-value persistence.
// It plays the role browser local storage played for the original widget.
type Provider interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}
