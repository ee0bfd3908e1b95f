package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/memory"
)

const menuYAML = `
default_selection: happy
animations:
  - {guid: g-smile, name: smile}
items:
  - mode: {id: calm, display_name: Calm}
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
                  - {hand: left, gesture: fist}
                base: g-smile
`

// setupProject writes a menu, a template and a config into a temp dir.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "menus"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menus", "faces.yaml"), []byte(menuYAML), 0o644))

	tpl, err := json.Marshal(memory.DefaultTemplate())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.json"), tpl, 0o644))

	cfg := "menus:\n  dir: " + filepath.Join(dir, "menus") +
		"\nstore:\n  dir: " + filepath.Join(dir, "out") +
		"\n  installation: " + filepath.Join(dir, "installed.json") +
		"\ntemplate: " + filepath.Join(dir, "template.json") +
		"\nmetrics_textfile: " + filepath.Join(dir, "fxgen.prom") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fxgen.yaml"), []byte(cfg), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	dir := setupProject(t)
	cfg := filepath.Join(dir, "fxgen.yaml")

	out, err := run(t, "validate", "-c", cfg, "--menus")
	require.NoError(t, err)
	assert.Contains(t, out, "1 menus are valid")

	out, err = run(t, "generate", "-c", cfg, "faces")
	require.NoError(t, err, out)
	assert.Contains(t, out, "faces")

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	first := entries[0].Name()

	prom, err := os.ReadFile(filepath.Join(dir, "fxgen.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `fxgen_passes_total{layout="normal",result="success"} 1`)

	out, err = run(t, "validate", "-c", cfg, "--menus=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Controller "+first+" is valid")

	out, err = run(t, "graph", "-c", cfg, first)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "AFK Standby")

	_, err = run(t, "graph", "-c", cfg, "--layer", "Nope")
	assert.ErrorContains(t, err, `layer "Nope" not found`)

	out, err = run(t, "clean", "-c", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCLI_ConfigErrors(t *testing.T) {
	_, err := run(t, "clean", "-c", "", "--set", "store.backend=tape")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fxgen version dev\n", out)
}
