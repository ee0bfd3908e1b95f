package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/suzuryg/facial-expression-switcher/internal/dto"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Loader adapts a Loam repository of menu documents to ports.MenuSource.
// Menus live in the frontmatter of Markdown files (the body is free-form notes)
// or in plain JSON/YAML documents.
type Loader struct {
	Repo *loam.TypedRepository[dto.MenuDocument]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.MenuDocument]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// LoadMenu retrieves a menu by its normalized ID ("faces" finds faces.md).
func (l *Loader) LoadMenu(ctx context.Context, id string) (*domain.Menu, error) {
	doc, err := l.Repo.Get(ctx, id)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMenuNotFound, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	meta := doc.Data
	docID := trimExtension(doc.ID)
	if meta.ID != "" {
		meta.ID = trimExtension(meta.ID)
	}
	return meta.ToDomain(docID)
}

// ListMenus lists all menus in the repository.
func (l *Loader) ListMenus(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch reports the IDs of menu documents as they change.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
