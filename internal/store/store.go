package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jimdowning-cyclops/versioning-go/internal/version"
)

// DefaultPath is the version file used when no path is configured.
const DefaultPath = "VERSION"

// Store reads and writes a single version file.
type Store struct {
	path string
}

// New returns a Store for the file at path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the version file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current version. A missing file yields the zero version.
func (s *Store) Load() (version.Version, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("version file not found, starting from zero", "path", s.path)
		return version.Zero(), nil
	}
	if err != nil {
		return version.Version{}, fmt.Errorf("failed to read version file: %w", err)
	}

	v, err := version.Parse(string(data))
	if err != nil {
		return version.Version{}, fmt.Errorf("%s: %w", s.path, err)
	}

	slog.Debug("loaded version", "path", s.path, "version", v.String())
	return v, nil
}

// Save replaces the file contents with the canonical form of v.
// The new contents are written to a temporary file in the same directory
// and renamed over the target.
func (s *Store) Save(v version.Version) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.WriteString(v.String() + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write version file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set version file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace version file: %w", err)
	}

	slog.Debug("saved version", "path", s.path, "version", v.String())
	return nil
}
