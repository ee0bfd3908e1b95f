package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Loader implements ports.MenuSource using an in-memory map.
type Loader struct {
	mu    sync.RWMutex
	menus map[string]*domain.Menu
}

// NewLoader creates a loader holding the given menus, keyed by their ID.
func NewLoader(menus ...*domain.Menu) *Loader {
	l := &Loader{menus: make(map[string]*domain.Menu)}
	for _, m := range menus {
		l.menus[m.ID] = m
	}
	return l
}

// Put adds or replaces a menu.
func (l *Loader) Put(menu *domain.Menu) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.menus[menu.ID] = menu
}

// LoadMenu returns the menu with the given ID.
func (l *Loader) LoadMenu(_ context.Context, id string) (*domain.Menu, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	menu, ok := l.menus[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMenuNotFound, id)
	}
	return menu, nil
}

// ListMenus returns all available menu IDs.
func (l *Loader) ListMenus(context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.menus))
	for k := range l.menus {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// Catalog implements ports.AnimationCatalog over a fixed list.
type Catalog struct {
	byGUID map[string]domain.AnimationInfo
}

// NewCatalog indexes the animations by GUID.
func NewCatalog(animations ...domain.AnimationInfo) *Catalog {
	c := &Catalog{byGUID: make(map[string]domain.AnimationInfo, len(animations))}
	for _, a := range animations {
		c.byGUID[a.GUID] = a
	}
	return c
}

// Lookup resolves a reference.
func (c *Catalog) Lookup(ref domain.AnimationRef) (domain.AnimationInfo, bool) {
	if ref.IsZero() {
		return domain.AnimationInfo{}, false
	}
	a, ok := c.byGUID[ref.GUID]
	return a, ok
}
