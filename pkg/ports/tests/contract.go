package tests

import (
	"context"
	"testing"

	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// MenuSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.MenuSource.
// expected maps menu IDs to the number of top-level items each should load with.
func MenuSourceContractTest(t *testing.T, source ports.MenuSource, expected map[string]int) {
	t.Helper()
	ctx := context.Background()

	// 1. Test LoadMenu (Success)
	t.Run("LoadMenu_Success", func(t *testing.T) {
		for id, items := range expected {
			menu, err := source.LoadMenu(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading menu %s: %v", id, err)
			}
			if menu.ID != id {
				t.Errorf("menu ID mismatch. got %q, want %q", menu.ID, id)
			}
			if len(menu.Items) != items {
				t.Errorf("item count mismatch for %s. got %d, want %d", id, len(menu.Items), items)
			}
		}
	})

	// 2. Test LoadMenu (NotFound)
	t.Run("LoadMenu_NotFound", func(t *testing.T) {
		_, err := source.LoadMenu(ctx, "non-existent-menu")
		if err == nil {
			t.Error("expected error for non-existent menu, got nil")
		}
	})

	// 3. Test ListMenus
	t.Run("ListMenus", func(t *testing.T) {
		ids, err := source.ListMenus(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing menus: %v", err)
		}

		if len(ids) != len(expected) {
			t.Errorf("expected %d menus, got %d", len(expected), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range expected {
			if !lookup[id] {
				t.Errorf("menu %s missing from list", id)
			}
		}
	})
}
