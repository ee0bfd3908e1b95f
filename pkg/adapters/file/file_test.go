package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/file"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/memory"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
	contract "github.com/suzuryg/facial-expression-switcher/pkg/ports/tests"
)

func TestStore_Contract(t *testing.T) {
	ports.RunOutputStoreContract(t, file.New(t.TempDir()))
}

func TestInstallation_Contract(t *testing.T) {
	ports.RunInstallationContract(t, file.NewInstallation(filepath.Join(t.TempDir(), "state", "installed.json")))
}

func TestStore_NestedKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, store.Create(ctx, "FES_1"))
	require.NoError(t, store.Put(ctx, "FES_1", "thumbnails/a.webp", []byte("img")))
	assert.FileExists(t, filepath.Join(dir, "FES_1", "thumbnails", "a.webp"))

	assert.Error(t, store.Put(ctx, "FES_1", "../escape", []byte("x")))
	assert.Error(t, store.Create(ctx, "../escape"))
}

func TestStore_ListIgnoresFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, store.Create(ctx, "FES_b"))
	require.NoError(t, store.Create(ctx, "FES_a"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"FES_a", "FES_b"}, names)
}

func TestStore_ListMissingDir(t *testing.T) {
	names, err := file.New(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

const yamlMenu = `
items:
  - mode: {id: calm, display_name: Calm}
  - mode:
      id: happy
      display_name: Happy
      branches:
        - conditions: [{hand: either, gesture: victory}]
`

const tomlMenu = `
id = "toml-menu"

[[items]]
[items.mode]
id = "calm"
display_name = "Calm"
`

const jsonMenu = `{"items": []}`

func writeMenus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"yaml-menu.yaml": yamlMenu,
		"toml-menu.toml": tomlMenu,
		"json-menu.json": jsonMenu,
		"README.md":      "not a menu",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestMenuSource_Contract(t *testing.T) {
	source := file.NewMenuSource(writeMenus(t))
	contract.MenuSourceContractTest(t, source, map[string]int{
		"yaml-menu": 2,
		"toml-menu": 1,
		"json-menu": 0,
	})
}

func TestMenuSource_Branches(t *testing.T) {
	menu, err := file.NewMenuSource(writeMenus(t)).LoadMenu(context.Background(), "yaml-menu")
	require.NoError(t, err)
	happy := menu.Items[1].Mode
	require.Len(t, happy.Branches, 1)
	assert.Equal(t, domain.Victory, happy.Branches[0].Conditions[0].HandGesture)
}

func TestMenuSource_Collision(t *testing.T) {
	dir := writeMenus(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yaml-menu.json"), []byte(jsonMenu), 0644))

	_, err := file.NewMenuSource(dir).ListMenus(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}

func TestReadMenu_IDMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: b\nitems: []\n"), 0644))

	_, err := file.ReadMenu(path)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestReadMenu_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [unclosed"), 0644))

	_, err := file.ReadMenu(path)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTemplate_ReadsFreshCopies(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "template.json")
	data, err := json.Marshal(memory.DefaultTemplate())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	tmpl := file.NewTemplate(path)
	first, err := tmpl.Template(ctx)
	require.NoError(t, err)
	require.NoError(t, first.ReplaceLayer(&domain.Layer{Name: domain.LayerSetControl, StateMachine: &domain.StateMachine{Name: "x"}}))

	second, err := tmpl.Template(ctx)
	require.NoError(t, err)
	for _, name := range []string{domain.LayerSetControl, domain.LayerBlink, domain.LayerMouthMorphCanceler} {
		assert.True(t, second.HasLayer(name))
	}
	assert.Equal(t, domain.LayerSetControl, second.(*domain.Controller).Layer(domain.LayerSetControl).StateMachine.Name)

	_, err = file.NewTemplate(filepath.Join(t.TempDir(), "missing.json")).Template(ctx)
	assert.Error(t, err)
}
