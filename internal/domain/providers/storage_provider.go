package providers

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// StorageProvider defines the interface for durable key-value storage.
// The persistence gateway mirrors the whole record set through it as a
// single blob; an expiration of 0 means the value never expires.
type StorageProvider interface {
	// Get retrieves a value from storage
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with expiration (0 = no expiration)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from storage
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in storage
	Exists(ctx context.Context, key string) (bool, error)
}
