package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

// FileStoreVersion is the current on-disk format version.
const FileStoreVersion = 1

// DefaultFileName is the state file name inside the commentdash home.
const DefaultFileName = "state.json"

type fileStoreData struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore keeps all keys in one JSON file. Every Save is a locked
// read-modify-write followed by an atomic rename, so concurrent commentdash
// processes never interleave partial writes.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a FileStore at filePath. An empty path selects
// ~/.commentdash/state.json. The file is created on the first Save.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".commentdash", DefaultFileName)
	}
	return &FileStore{filePath: filePath}, nil
}

// FilePath returns the state file path.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// Load implements Store. A corrupted file is reported as ErrStoreCorrupted.
func (s *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := data.Entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Save implements Store. A corrupted file is replaced rather than blocking
// every later save.
func (s *FileStore) Save(_ context.Context, key string, blob []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.update(func(entries map[string]string) {
		entries[key] = string(blob)
	})
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.update(func(entries map[string]string) {
		delete(entries, key)
	})
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) update(mutate func(map[string]string)) error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		data = fileStoreData{Version: FileStoreVersion, Entries: make(map[string]string)}
	}
	mutate(data.Entries)
	return s.write(data)
}

func (s *FileStore) read() (fileStoreData, error) {
	empty := fileStoreData{Version: FileStoreVersion, Entries: make(map[string]string)}

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return empty, fmt.Errorf("reading state file: %w", err)
	}

	var data fileStoreData
	if unmarshalErr := json.Unmarshal(raw, &data); unmarshalErr != nil {
		return empty, fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}
	if data.Version != FileStoreVersion {
		return empty, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, data.Version, FileStoreVersion)
	}
	if data.Entries == nil {
		data.Entries = make(map[string]string)
	}
	return data, nil
}

func (s *FileStore) write(data fileStoreData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating state directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, raw, 0o600); writeErr != nil {
		return fmt.Errorf("writing state temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming state temp file: %w", renameErr)
	}
	return nil
}

func (s *FileStore) lockFilePath() string {
	return s.filePath + ".lock"
}

// acquireFileLock takes an exclusive lock file holding the owner's PID. Locks
// older than staleLockAge whose owner is gone are removed.
func (s *FileStore) acquireFileLock() (func(), error) {
	lockPath := s.lockFilePath()

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	const maxRetries = 10
	const retryDelay = 100 * time.Millisecond
	const staleLockAge = 30 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if isLockHeldByLiveProcess(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	return processExists(pid) == nil
}

func processExists(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	// Signal 0 tests existence without delivering a signal.
	return proc.Signal(syscall.Signal(0))
}
