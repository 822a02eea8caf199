package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has never been written or was removed.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a Provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a durable string-keyed store of JSON documents.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the raw JSON stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// All returns every stored key with its raw JSON value.
	All() (map[string][]byte, error)
	// Apply runs ops in order as one transaction: either all of them persist or none do.
	Apply(ops ...Op) error

	// Utils
	SchemaVersion() (current, latest int, err error)
	GetConfigPath() string
}
