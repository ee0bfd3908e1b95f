package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

func byName(params []domain.ParameterConfig) map[string]domain.ParameterConfig {
	out := make(map[string]domain.ParameterConfig, len(params))
	for _, p := range params {
		out[p.Name] = p
	}
	return out
}

func TestParameters_Defaults(t *testing.T) {
	params := generator.Parameters(generator.DefaultSettings(), 3)
	require.Len(t, params, 25)
	m := byName(params)

	assert.Equal(t, domain.ParameterConfig{Name: domain.ParamEmotePattern, SyncType: domain.SyncInt, DefaultValue: 3, Saved: true}, m[domain.ParamEmotePattern])
	assert.Equal(t, domain.ParameterConfig{Name: domain.ParamContactLock, SyncType: domain.SyncBool, DefaultValue: 1, Saved: true}, m[domain.ParamContactLock])
	assert.Equal(t, domain.ParameterConfig{Name: domain.ParamWaitEmoteByVoice, SyncType: domain.SyncBool, Saved: true}, m[domain.ParamWaitEmoteByVoice])
	assert.Equal(t, domain.ParameterConfig{Name: domain.ParamSyncEmote, SyncType: domain.SyncInt}, m[domain.ParamSyncEmote])
	assert.Equal(t, domain.ParameterConfig{Name: domain.ParamControllerQuest, SyncType: domain.SyncNone}, m[domain.ParamControllerQuest], "disabled options are not synced")
	assert.Equal(t, domain.SyncBool, m[domain.ParamForceBlinkDisable].SyncType)
	assert.Equal(t, domain.SyncNone, m[domain.ParamDummy].SyncType)
	assert.Empty(t, m[domain.ParamDummy].RemapTo)
}

func TestParameters_BlinkOffNeedsReplaceBlink(t *testing.T) {
	s := generator.DefaultSettings()
	s.ReplaceBlink = false
	assert.Equal(t, domain.SyncNone, byName(generator.Parameters(s, 0))[domain.ParamForceBlinkDisable].SyncType)
}

func TestParameters_Prefix(t *testing.T) {
	s := generator.DefaultSettings()
	s.AddParameterPrefix = true
	s.ParameterPrefix = "X_"

	for _, p := range generator.Parameters(s, 0) {
		assert.Equal(t, "X_"+p.Name, p.RemapTo)
	}
}
