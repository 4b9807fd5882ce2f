package swap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const DefaultStoreFileName = ".peake-swap-pending.json"

// Store persists the single pending-swap slot.
type Store interface {
	// Load returns the stored record, or nil when no record exists.
	Load() (*PendingSwap, error)
	Save(record *PendingSwap) error
	Clear() error
}

// FileStore keeps the record in a JSON file, written atomically.
type FileStore struct {
	filePath string
	mu       sync.Mutex
}

// NewFileStore creates a file store. An empty path defaults to the user's
// home directory.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStoreFileName)
	}

	return &FileStore{filePath: filePath}, nil
}

// Load reads the stored record.
func (s *FileStore) Load() (*PendingSwap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pending swap: %w", err)
	}

	var record PendingSwap
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending swap: %w", err)
	}

	return &record, nil
}

// Save writes the record, superseding whatever was stored before.
func (s *FileStore) Save(record *PendingSwap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pending swap: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write pending swap: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pending swap: %w", err)
	}

	return nil
}

// GetFilePath returns the storage file path
func (s *FileStore) GetFilePath() string {
	return s.filePath
}
