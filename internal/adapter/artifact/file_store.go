package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"video-quiz/internal/domain"
)

// FileStore implements domain.ArtifactStore on the local filesystem. Names are
// resolved relative to the store's directory and existing files are overwritten.
type FileStore struct {
	dir string
}

// NewFileStore creates a new FileStore rooted at dir
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// SaveText writes content as UTF-8 to name.
func (s *FileStore) SaveText(name, content string) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}

// LoadText reads a previously saved artifact.
func (s *FileStore) LoadText(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("failed to read artifact %s: %w", name, err)
	}
	return string(data), nil
}

// Path is the file location of name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

var _ domain.ArtifactStore = (*FileStore)(nil)
