package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrNotFound       = errors.New("cache entry not found")
	ErrExpired        = errors.New("cache entry expired")
	ErrInvalidKey     = errors.New("cache key cannot be empty")
	ErrDisabled       = errors.New("cache is disabled")
	ErrEmptyDirectory = errors.New("cache directory cannot be empty")
)

// Key derives the cache key for an endpoint URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:])
}

// FileStore stores fetched collections as JSON files with TTL expiration.
// It is safe for concurrent use; both collections are written from parallel
// fetches.
type FileStore struct {
	directory string
	enabled   bool
	ttl       time.Duration

	mu sync.RWMutex
}

// NewFileStore creates a file store in directory, creating it if needed.
// A disabled store accepts every call and reports ErrDisabled.
func NewFileStore(directory string, enabled bool, ttl time.Duration) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}
	if directory == "" {
		return nil, ErrEmptyDirectory
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory: directory,
		enabled:   true,
		ttl:       ttl,
	}, nil
}

// Get retrieves the entry for key. It returns ErrNotFound when no entry
// exists and ErrExpired when the entry is past its TTL.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyToFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}
	if entry.IsExpired() {
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set stores data for key and url, overwriting any previous entry.
func (s *FileStore) Set(key, url string, data json.RawMessage) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryData, err := json.MarshalIndent(NewEntry(key, url, data, s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}
	return nil
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToFilePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes all cache entries.
func (s *FileStore) Clear() error {
	return s.removeWhere(func(string) bool { return true })
}

// CleanupExpired removes expired and unreadable entries.
func (s *FileStore) CleanupExpired() error {
	return s.removeWhere(func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		var entry Entry
		if json.Unmarshal(data, &entry) != nil {
			return true
		}
		return entry.IsExpired()
	})
}

// Count returns the number of cache files, including expired ones.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	paths, err := s.entryPaths()
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

func (s *FileStore) removeWhere(match func(path string) bool) error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.entryPaths()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if !match(path) {
			continue
		}
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(path), removeErr)
		}
	}
	return nil
}

func (s *FileStore) entryPaths() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != cacheFileExtension {
			continue
		}
		paths = append(paths, filepath.Join(s.directory, entry.Name()))
	}
	return paths, nil
}

// keyToFilePath converts a cache key to a file path safe on every platform.
func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safeKey+cacheFileExtension)
}
