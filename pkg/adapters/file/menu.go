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

	"github.com/suzuryg/facial-expression-switcher/internal/dto"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// MenuSource implements ports.MenuSource over a directory of menu documents.
// The file name without extension is the menu ID.
type MenuSource struct {
	Dir string
}

// NewMenuSource creates a source reading menus from dir.
func NewMenuSource(dir string) *MenuSource {
	return &MenuSource{Dir: dir}
}

// LoadMenu reads and converts the menu document with the given ID.
func (m *MenuSource) LoadMenu(_ context.Context, id string) (*domain.Menu, error) {
	for _, ext := range dto.Extensions {
		path := filepath.Join(m.Dir, id+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return ReadMenu(path)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMenuNotFound, id)
}

// ListMenus returns the IDs of all menu documents in the directory, sorted.
func (m *MenuSource) ListMenus(context.Context) ([]string, error) {
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isMenuFile(entry.Name()) {
			continue
		}
		name := entry.Name()
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, name)
		}
		seen[id] = name
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func isMenuFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range dto.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadMenu decodes a single menu document. The format follows the file extension
// and a document without an id takes the file name.
func ReadMenu(path string) (*domain.Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	raw, err := dto.Unmarshal(filepath.Ext(path), data)
	if err != nil {
		return nil, &domain.ConfigurationError{Path: path, Reason: err.Error()}
	}
	doc, err := dto.Decode(raw)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if doc.ID != "" && doc.ID != id {
		return nil, &domain.ConfigurationError{Path: path, Reason: fmt.Sprintf("document id %q does not match file name %q", doc.ID, id)}
	}
	return doc.ToDomain(id)
}
