package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pinboard-dev/pinboard/internal/service"
)

// Storage keeps uploaded pin images on local disk under a single root
// directory that is also served statically.
type Storage struct {
	rootPath string
}

// Ensure Storage implements the interface at compile time.
var _ service.MediaStorage = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes a file under the storage root and returns its relative path.
func (s *Storage) Save(fileData io.Reader, filename string) (string, error) {
	// The filename is generated internally (uuid + extension), Base is a
	// guard against traversal if that ever changes.
	relativePath := filepath.Base(filepath.Clean(filename))
	fullPath := filepath.Join(s.rootPath, relativePath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort cleanup
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

// Read opens a stored file for reading.
func (s *Storage) Read(filename string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Base(filename))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pin image not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a single stored file. Already-gone files are not an error.
func (s *Storage) Delete(filename string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Base(filename))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Root returns the directory served statically for pin images.
func (s *Storage) Root() string {
	return s.rootPath
}
