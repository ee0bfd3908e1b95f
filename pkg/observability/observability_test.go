package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnLayerEmitted(ctx, &domain.LayerEvent{Layer: "FES Emote", States: 12, Transitions: 30})
	hooks.OnLayerEmitted(ctx, &domain.LayerEvent{Layer: "FES Emote", States: 8, Transitions: 20})
	hooks.OnPassFinished(ctx, &domain.PassEvent{Duration: 50 * time.Millisecond, Warnings: 2})
	hooks.OnPassFinished(ctx, &domain.PassEvent{Compressed: true})
	hooks.OnPassFinished(ctx, &domain.PassEvent{Err: errors.New("boom")})
	hooks.OnCleaned(ctx, &domain.CleanupEvent{Output: "FES_old"})

	expected := `
# HELP fxgen_passes_total Generation passes by result and layout.
# TYPE fxgen_passes_total counter
fxgen_passes_total{layout="compressed",result="success"} 1
fxgen_passes_total{layout="normal",result="failure"} 1
fxgen_passes_total{layout="normal",result="success"} 1
# HELP fxgen_layer_states States in the last emitted version of a layer.
# TYPE fxgen_layer_states gauge
fxgen_layer_states{layer="FES Emote"} 8
# HELP fxgen_warnings_total Recoverable configuration problems found during passes.
# TYPE fxgen_warnings_total counter
fxgen_warnings_total 2
# HELP fxgen_outputs_cleaned_total Stale outputs deleted.
# TYPE fxgen_outputs_cleaned_total counter
fxgen_outputs_cleaned_total 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"fxgen_passes_total", "fxgen_layer_states", "fxgen_warnings_total", "fxgen_outputs_cleaned_total")
	require.NoError(t, err)
	count, err := testutil.GatherAndCount(m.Registry(), "fxgen_pass_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_HandlerAndTextfile(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnCleaned(context.Background(), &domain.CleanupEvent{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "fxgen_outputs_cleaned_total 1")

	path := filepath.Join(t.TempDir(), "fxgen.prom")
	require.NoError(t, m.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fxgen_outputs_cleaned_total 1")
}

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnPassFinished: func(context.Context, *domain.PassEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnPassFinished: func(context.Context, *domain.PassEvent) { calls = append(calls, "b") },
		OnCleaned:      func(context.Context, *domain.CleanupEvent) { calls = append(calls, "b-clean") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, hooks.OnLayerEmitted)
	hooks.OnPassFinished(context.Background(), &domain.PassEvent{})
	hooks.OnCleaned(context.Background(), &domain.CleanupEvent{})
	assert.Equal(t, []string{"a", "b", "b-clean"}, calls)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LogHooks(logger)

	hooks.OnPassFinished(context.Background(), &domain.PassEvent{EventBase: domain.EventBase{PassID: "p1"}, Output: "FES_x"})
	hooks.OnPassFinished(context.Background(), &domain.PassEvent{Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, `msg="Pass finished" pass_id=p1 output=FES_x`)
	assert.Contains(t, out, `msg="Pass failed"`)
	assert.Contains(t, out, "err=boom")
}
