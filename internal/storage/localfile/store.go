// Package localfile stores the credential bundle in a single JSON file.
//
// Writes are atomic (temp file then rename) but not mutually excluded:
// concurrent writers race and the last rename wins.
package localfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Store reads and writes the credential bundle document.
type Store struct {
	fs     afero.Fs
	path   string
	logger *common.Logger
}

// NewStore creates a Store backed by the OS filesystem.
func NewStore(logger *common.Logger, path string) *Store {
	return NewStoreWithFs(logger, afero.NewOsFs(), path)
}

// NewStoreWithFs creates a Store on an arbitrary afero filesystem.
func NewStoreWithFs(logger *common.Logger, fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: filepath.Clean(path), logger: logger}
}

// Path returns the credential file location.
func (s *Store) Path() string {
	return s.path
}

// Read loads the bundle. A missing file returns models.ErrNotFound; an
// unreadable or unparseable file returns a wrapped error.
func (s *Store) Read() (*models.CredentialBundle, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("credential file %s: %w", s.path, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("credential file %s is empty: %w", s.path, models.ErrNotFound)
	}

	var bundle models.CredentialBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return &bundle, nil
}

// Write replaces the file with the indented JSON form of bundle.
func (s *Store) Write(bundle *models.CredentialBundle) error {
	jsonData, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(s.fs, dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Msg("Local credential file written")
	return nil
}
