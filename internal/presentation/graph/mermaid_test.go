package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suzuryg/facial-expression-switcher/internal/presentation/graph"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/dsl"
)

func sampleLayer() *domain.Layer {
	b := dsl.New("Player")
	root := b.Root()
	sub := root.Machine("Fun/Happy")
	root.EntryTo(sub).When(dsl.False("AFK"))
	sub.ThenExit()

	smile := sub.State(`say "cheese"`).Clip(domain.Clip{Name: "smile"})
	sub.EntryTo(smile).When(dsl.Eq("SYNC", 1))
	smile.ToExit().When(dsl.True("AFK")).When(dsl.Ne("SYNC", 1), dsl.Lt("Voice", 0.01))

	override := root.State("in OVERRIDE")
	root.AnyTo(override).When(dsl.True("Override"))
	return b.Build()
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sampleLayer(), nil)

	for _, want := range []string{
		"graph TD\n",
		`subgraph n`,
		`["Fun/Happy"]`,
		`["say 'cheese'"]`,
		`[/"in OVERRIDE"/]`,
		`(("entry"))`,
		`{{"any"}}`,
		`(("exit"))`,
		`-- "!AFK" -->`,
		`-- "SYNC == 1" -->`,
		`-- "AFK or SYNC != 1 and Voice < 0.01" -->`,
		`-- "Override" -->`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, strings.Count(out, "subgraph"), strings.Count(out, "    end\n"))
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(sampleLayer(), &graph.GraphOverlay{
		Highlighted: [][]string{{"in OVERRIDE"}, {"in OVERRIDE"}},
	})
	assert.Contains(t, out, "classDef highlighted")
	assert.Equal(t, 1, strings.Count(out, " highlighted;\n"))
}

func TestGenerateMermaid_Nil(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}

func TestFormatGuard(t *testing.T) {
	tests := []struct {
		guard domain.Guard
		want  string
	}{
		{dsl.Eq("P", 3), "P == 3"},
		{dsl.Ne("P", 0), "P != 0"},
		{dsl.Gt("W", 0.5), "W > 0.5"},
		{dsl.Lt("W", 0.01), "W < 0.01"},
		{dsl.True("B"), "B"},
		{dsl.False("B"), "!B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, graph.FormatGuard(tt.guard))
	}
}
