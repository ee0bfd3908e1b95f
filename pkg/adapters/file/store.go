package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Store implements ports.OutputStore using the local filesystem.
// Every output is a directory below BasePath; artifact keys are relative paths in it.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".fxgen/outputs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".fxgen", "outputs")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) dir(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	return filepath.Join(s.BasePath, name), nil
}

func (s *Store) artifact(name, key string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return filepath.Join(dir, clean), nil
}

// Create makes the output directory. It fails when the directory already exists.
func (s *Store) Create(_ context.Context, name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return domain.ErrOutputExists
		}
		return fmt.Errorf("failed to create output: %w", err)
	}
	return nil
}

// Put writes an artifact atomically.
func (s *Store) Put(_ context.Context, name, key string, data []byte) error {
	path, err := s.artifact(name, key)
	if err != nil {
		return err
	}
	dir, _ := s.dir(name)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrOutputNotFound
		}
		return fmt.Errorf("failed to stat output: %w", err)
	}
	return writeAtomic(path, data)
}

// Get reads an artifact.
func (s *Store) Get(_ context.Context, name, key string) ([]byte, error) {
	path, err := s.artifact(name, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrOutputNotFound
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// List returns the names of all output directories, sorted.
func (s *Store) List(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the output directory and everything in it.
func (s *Store) Delete(_ context.Context, name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrOutputNotFound
		}
		return fmt.Errorf("failed to stat output: %w", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete output: %w", err)
	}
	return nil
}
