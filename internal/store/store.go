package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Persisted keys.
const (
	KeyViewState       = "dashboardFilters"
	KeySelectedComment = "selectedComment"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Common store errors.
var (
	ErrEmptyKey       = errors.New("store key cannot be empty")
	ErrStoreCorrupted = errors.New("state file corrupted")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrClosed         = errors.New("store is closed")
)

// Store is a durable key-value medium for opaque blobs.
type Store interface {
	// Load returns the blob saved under key. The boolean is false when no
	// blob exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save replaces the blob under key.
	Save(ctx context.Context, key string, blob []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backing resources.
	Close() error
}

// Backends lists the backend names accepted by Open.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// Open creates the Store for backend at path. The memory backend ignores path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

func cloneBlob(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
