package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/internal/logging"
	"github.com/suzuryg/facial-expression-switcher/internal/testutils"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/memory"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

const cleanupOutput = "FES_20261001_000000"

type harness struct {
	server  *Server
	handler http.Handler
	store   *memory.Store
	inst    *memory.Installation
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tpl, err := memory.NewTemplate(memory.DefaultTemplate())
	require.NoError(t, err)

	store := memory.NewStore()
	inst := memory.NewInstallation()
	streams := NewStreamManager(logging.NewNop())
	gen := generator.New(tpl, store, inst, generator.DefaultSettings(),
		generator.WithLifecycleHooks(streams.Hooks()),
		generator.WithClock(func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }),
		generator.WithIDGenerator(func() string { return "pass-1" }),
	)

	srv := NewServer(memory.NewLoader(testutils.SampleMenu()), gen, store, inst,
		WithStreams(streams),
		WithVersion("1.2.3\n"),
		WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("fxgen_passes_total 0\n"))
		})),
	)
	return &harness{server: srv, handler: srv.Handler(), store: store, inst: inst}
}

func (h *harness) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestServer_HealthAndInfo(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, "GET", "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = h.do(t, "GET", "/info")
	assert.JSONEq(t, `{"app":"fxgen-http","version":"1.2.3"}`, w.Body.String())

	w = h.do(t, "GET", "/metrics")
	assert.Contains(t, w.Body.String(), "fxgen_passes_total")

	w = h.do(t, "OPTIONS", "/menus/sample/generate")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Menus(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, "GET", "/menus/")
	assert.JSONEq(t, `["sample"]`, w.Body.String())

	w = h.do(t, "GET", "/menus/sample")
	require.Equal(t, http.StatusOK, w.Code)
	var menu domain.Menu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, "happy", menu.DefaultSelection)

	w = h.do(t, "GET", "/menus/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "menu not found: nope")
}

func TestServer_GenerateAndBrowse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Create(ctx, cleanupOutput))

	w := h.do(t, "POST", "/menus/sample/generate")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FES_20261014_090000", resp.Output)
	assert.Equal(t, "pass-1", resp.Manifest.PassID)
	assert.Equal(t, []string{cleanupOutput}, resp.Cleaned)
	assert.Empty(t, resp.CleanupError)

	w = h.do(t, "GET", "/outputs/")
	assert.JSONEq(t, `["FES_20261014_090000"]`, w.Body.String())

	w = h.do(t, "GET", "/outputs/FES_20261014_090000/manifest")
	require.Equal(t, http.StatusOK, w.Code)
	var manifest domain.Manifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, 2, manifest.ModeCount)

	w = h.do(t, "GET", "/outputs/FES_20261014_090000/artifacts/"+domain.ArtifactMenu)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = h.do(t, "GET", "/outputs/FES_20261014_090000/artifacts/missing.bin")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(t, "GET", "/installed")
	assert.JSONEq(t, `{"`+generator.DefaultSettings().TargetFor("sample")+`":{"output":"FES_20261014_090000","key":"controller.json"}}`, w.Body.String())
}

func TestServer_Graph(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusOK, h.do(t, "POST", "/menus/sample/generate").Code)

	w := h.do(t, "GET", "/outputs/FES_20261014_090000/graph?layer="+strings.ReplaceAll(domain.LayerEmotePlayer, " ", "%20"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD\n"))
	assert.Contains(t, w.Body.String(), `"AFK Standby"`)

	assert.Equal(t, http.StatusBadRequest, h.do(t, "GET", "/outputs/FES_20261014_090000/graph").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, "GET", "/outputs/FES_20261014_090000/graph?layer=Nope").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, "GET", "/outputs/FES_x/graph?layer=Nope").Code)
}

func TestServer_GenerateInvalidMenu(t *testing.T) {
	h := newHarness(t)
	bad := testutils.SampleMenu()
	bad.ID = "bad"
	bad.Items = append(bad.Items, bad.Items[0])
	h.server.menus = memory.NewLoader(bad)

	w := h.do(t, "POST", "/menus/bad/generate")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "configuration")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusFailedDependency, statusFor(&domain.TemplateMissingError{Layer: "x"}))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrOutputNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&domain.ResourceError{Op: "put", Err: assert.AnError}))
}

func readEvent(t *testing.T, sc *bufio.Scanner) (event, data string) {
	t.Helper()
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
	require.NoError(t, sc.Err())
	t.Fatal("stream ended")
	return "", ""
}

func TestSubscribeEvents(t *testing.T) {
	h := newHarness(t)
	ts := httptest.NewServer(h.handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events?type=pass_finished,output_cleaned", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	event, data := readEvent(t, sc)
	assert.Equal(t, "ping", event)
	assert.Equal(t, "connected", data)

	genResp, err := http.Post(ts.URL+"/menus/sample/generate", "application/json", nil)
	require.NoError(t, err)
	genResp.Body.Close()
	require.Equal(t, http.StatusOK, genResp.StatusCode)

	// Layer events are filtered out.
	event, data = readEvent(t, sc)
	assert.Equal(t, string(domain.EventPassFinished), event)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "FES_20261014_090000", payload["output"])
	assert.Equal(t, "pass-1", payload["pass_id"])
	assert.NotContains(t, payload, "error")
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())
	ch, cancel := sm.Subscribe()

	for range 20 {
		sm.Broadcast(Message{Type: domain.EventCleaned, Data: "{}"})
	}
	assert.Len(t, ch, 10)

	cancel()
	cancel()
	for range ch {
	}
	_, ok := <-ch
	assert.False(t, ok)
}
