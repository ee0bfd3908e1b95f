package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

const sampleYAML = `
id: sample
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
            blink: false
            branches:
              - conditions:
                  - {hand: left, gesture: fist}
                  - {hand: right, gesture: victory, operator: "!="}
                base: g-smile
                eye_tracking: animation
                left_trigger: true
`

func decodeYAML(t *testing.T, src string) *MenuDocument {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(src), &raw))
	doc, err := Decode(raw)
	require.NoError(t, err)
	return doc
}

func TestMenuDocument_ToDomain(t *testing.T) {
	menu, err := decodeYAML(t, sampleYAML).ToDomain("ignored")
	require.NoError(t, err)

	assert.Equal(t, "sample", menu.ID)
	assert.Equal(t, "happy", menu.DefaultSelection)
	require.Len(t, menu.Items, 2)

	calm := menu.Items[0].Mode
	assert.Equal(t, domain.Tracking, calm.EyeTrackingControl)
	assert.True(t, calm.BlinkEnabled, "blink defaults to on")

	happy := menu.Items[1].Group.Items[0].Mode
	assert.False(t, happy.BlinkEnabled)
	assert.True(t, happy.MouthMorphCancelerEnabled)
	require.Len(t, happy.Branches, 1)

	branch := happy.Branches[0]
	assert.Equal(t, []domain.Condition{
		{Hand: domain.HandLeft, HandGesture: domain.Fist, ComparisonOperator: domain.Equals},
		{Hand: domain.HandRight, HandGesture: domain.Victory, ComparisonOperator: domain.NotEqual},
	}, branch.Conditions)
	assert.Equal(t, domain.Animation, branch.EyeTrackingControl)
	assert.True(t, branch.LeftTriggerActive())
}

func TestMenuDocument_FallbackID(t *testing.T) {
	menu, err := (&MenuDocument{}).ToDomain("from-file")
	require.NoError(t, err)
	assert.Equal(t, "from-file", menu.ID)
}

func TestMenuDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  MenuDocument
		path string
	}{
		{"empty item", MenuDocument{ID: "m", Items: []ItemDocument{{}}}, "m/items[0]"},
		{"both kinds", MenuDocument{ID: "m", Items: []ItemDocument{{Group: &GroupDocument{}, Mode: &ModeDocument{}}}}, "m/items[0]"},
		{"bad tracking", MenuDocument{ID: "m", Items: []ItemDocument{{Mode: &ModeDocument{EyeTracking: "eyes"}}}}, "m/items[0]"},
		{"bad hand", MenuDocument{ID: "m", Items: []ItemDocument{{Mode: &ModeDocument{Branches: []BranchDocument{
			{Conditions: []ConditionDocument{{Hand: "feet", Gesture: "fist"}}},
		}}}}}, "m/items[0]/branches[0]/conditions[0]"},
		{"bad gesture", MenuDocument{ID: "m", Items: []ItemDocument{{Mode: &ModeDocument{Branches: []BranchDocument{
			{Conditions: []ConditionDocument{{Hand: "left", Gesture: "wave"}}},
		}}}}}, "m/items[0]/branches[0]/conditions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToDomain("")
			require.ErrorIs(t, err, domain.ErrConfiguration)
			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.path, cfgErr.Path)
		})
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(map[string]any{"id": "m", "itemz": []any{}})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
