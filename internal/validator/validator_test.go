package validator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/internal/testutils"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/memory"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/dsl"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

func TestValidateController_GeneratedIsClean(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		tmpl, err := memory.NewTemplate(memory.DefaultTemplate())
		require.NoError(t, err)
		settings := generator.DefaultSettings()
		settings.ForceCompressed = compressed

		g := generator.New(tmpl, memory.NewStore(), memory.NewInstallation(), settings,
			generator.WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
		res, err := g.Generate(context.Background(), testutils.SampleMenu())
		require.NoError(t, err)

		ctrl := res.Controller.(*domain.Controller)
		assert.Empty(t, Validate(ctrl), "compressed=%v", compressed)
		assert.NoError(t, ValidateController(ctrl))
	}
}

func TestValidate_FindsProblems(t *testing.T) {
	b := dsl.New("L")
	root := b.Root()
	a := root.State("A").Drive("Ghost", 1)
	root.State("Orphan")
	a.To(root.State("B")).When(dsl.True("Undeclared"))

	layer := b.Build()
	layer.StateMachine.States[0].Transitions = append(layer.StateMachine.States[0].Transitions, &domain.Transition{
		Source:      domain.Endpoint{Kind: domain.EndpointState, Path: []string{"A"}},
		Destination: domain.Endpoint{Kind: domain.EndpointState, Path: []string{"Missing"}},
	})

	ctrl := &domain.Controller{Layers: []*domain.Layer{layer}}
	var messages []string
	for _, issue := range Validate(ctrl) {
		messages = append(messages, issue.String())
	}

	assert.ElementsMatch(t, []string{
		`[L] A: guard reads undeclared parameter "Undeclared"`,
		`[L] Missing: transition points at a missing state`,
		`[L] Orphan: state is unreachable`,
		`[L] A: driver sets undeclared parameter "Ghost"`,
	}, messages)

	err := ValidateController(ctrl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 4 errors")
}

func TestValidate_MissingStateMachine(t *testing.T) {
	issues := Validate(&domain.Controller{Layers: []*domain.Layer{{Name: "Empty"}}})
	require.Len(t, issues, 1)
	assert.Equal(t, "[Empty] layer has no state machine", issues[0].String())
}
