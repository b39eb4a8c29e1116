package slot

import (
	"fmt"
	"os"
	"path/filepath"

	"postgen/internal/post"
)

// FileSlot stores the blob in a single file. Writes go to a temp file in
// the same directory and are renamed into place.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the file at path, creating its
// parent directory if needed. The file itself is created on first Save.
func NewFileSlot(path string) (*FileSlot, error) {
	if path == "" {
		return nil, fmt.Errorf("file slot requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &FileSlot{path: path}, nil
}

// Path returns the file backing the slot.
func (f *FileSlot) Path() string { return f.path }

// Load reads the file. A missing file means nothing has been stored.
func (f *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}
	return data, nil
}

// Save writes data using atomic write (temp file + rename).
func (f *FileSlot) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (f *FileSlot) Close() error { return nil }

// Compile-time check that FileSlot implements post.Slot interface
var _ post.Slot = (*FileSlot)(nil)
