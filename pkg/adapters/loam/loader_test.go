package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/internal/dto"
	"github.com/suzuryg/facial-expression-switcher/internal/testutils"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports/tests"
)

const facesDoc = `---
id: faces
default_selection: happy
animations:
  - guid: g-smile
    name: smile
items:
  - mode:
      id: calm
      display_name: Calm
  - group:
      id: fun
      display_name: Fun
      items:
        - mode:
            id: happy
            display_name: Happy
            animation: g-smile
            branches:
              - conditions:
                  - hand: left
                    gesture: fist
                base: g-smile
---
Everyday faces.`

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docs := []core.Document{
		{ID: "faces.md", Content: facesDoc},
		{ID: "empty.md", Content: "---\nid: empty\nitems: []\n---\nNothing yet."},
	}
	for _, doc := range docs {
		if err := repo.Save(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	loader := New(loam.NewTypedRepository[dto.MenuDocument](repo))
	tests.MenuSourceContractTest(t, loader, map[string]int{"faces": 2, "empty": 0})
}

func TestLoader_LoadMenu_ConvertsTree(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteMenu(t, tmpDir, "faces.md", facesDoc)

	loader := New(loam.NewTypedRepository[dto.MenuDocument](repo))
	menu, err := loader.LoadMenu(context.Background(), "faces")
	require.NoError(t, err)

	assert.Equal(t, "happy", menu.DefaultSelection)
	require.Len(t, menu.Animations, 1)
	happy := menu.Items[1].Group.Items[0].Mode
	assert.Equal(t, domain.AnimationRef{GUID: "g-smile"}, happy.Animation)
	require.Len(t, happy.Branches, 1)
	assert.Equal(t, domain.Fist, happy.Branches[0].Conditions[0].HandGesture)
}

func TestLoader_ListMenus_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"start.md": `---
id: start.md
items: []
---
Hello`,
		"choice.json": `{
  "id": "choice.json",
  "items": []
}`,
		"implicit.md": `---
items: []
---
ID is implied from filename`,
	}
	for filename, content := range files {
		testutils.WriteMenu(t, tmpDir, filename, content)
	}

	loader := New(loam.NewTypedRepository[dto.MenuDocument](repo))
	ids, err := loader.ListMenus(context.Background())
	require.NoError(t, err)

	assert.Contains(t, ids, "start", "start.md should become start")
	assert.Contains(t, ids, "choice", "choice.json should become choice")
	assert.Contains(t, ids, "implicit", "implicit.md should become implicit")
	assert.Len(t, ids, 3)
}

func TestLoader_ListMenus_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"foo.json": `{
  "id": "foo"
}`,
	}
	for filename, content := range files {
		testutils.WriteMenu(t, tmpDir, filename, content)
	}

	loader := New(loam.NewTypedRepository[dto.MenuDocument](repo))
	_, err := loader.ListMenus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_LoadMenu_InvalidCondition(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	content := `---
items:
  - mode:
      id: m
      branches:
        - conditions:
            - hand: left
              gesture: wave
---`
	testutils.WriteMenu(t, tmpDir, "bad.md", content)

	loader := New(loam.NewTypedRepository[dto.MenuDocument](repo))
	_, err := loader.LoadMenu(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
