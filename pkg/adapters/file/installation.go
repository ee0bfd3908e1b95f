package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Installation implements ports.Installation as a JSON pointer file mapping
// targets to installed artifacts.
type Installation struct {
	Path string
	mu   sync.Mutex
}

// NewInstallation creates an installation backed by path.
// If path is empty, it defaults to ".fxgen/installed.json".
func NewInstallation(path string) *Installation {
	if path == "" {
		path = filepath.Join(".fxgen", "installed.json")
	}
	return &Installation{Path: path}
}

// Installed reads the pointer file. A missing file means nothing is installed.
func (i *Installation) Installed(context.Context) (map[string]domain.ArtifactRef, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.read()
}

func (i *Installation) read() (map[string]domain.ArtifactRef, error) {
	refs := make(map[string]domain.ArtifactRef)
	data, err := os.ReadFile(i.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return refs, nil
		}
		return nil, fmt.Errorf("failed to read installation file: %w", err)
	}
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal installation file: %w", err)
	}
	return refs, nil
}

// Install records ref for target and rewrites the pointer file atomically.
func (i *Installation) Install(_ context.Context, target string, ref domain.ArtifactRef) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	refs, err := i.read()
	if err != nil {
		return err
	}
	refs[target] = ref
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal installation file: %w", err)
	}
	return writeAtomic(i.Path, data)
}
