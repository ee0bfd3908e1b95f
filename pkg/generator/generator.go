package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/suzuryg/facial-expression-switcher/internal/logging"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/emote"
	"github.com/suzuryg/facial-expression-switcher/pkg/output"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// LockKey is the lock every pass holds from allocation to cleanup. Cleanup sees
// the whole store, so passes over different menus must not overlap either.
const LockKey = "fxgen:outputs"

// RequiredLayers are the template layers every pass writes into.
var RequiredLayers = []string{
	domain.LayerSetControl,
	domain.LayerDefaultFace,
	domain.LayerEmotePlayer,
	domain.LayerBlink,
	domain.LayerMouthMorphCanceler,
}

// Generator runs generation passes: it turns an expression configuration into a
// controller, a selector menu and a parameter manifest, writes them to a fresh
// output, installs the controller and cleans outputs nothing references anymore.
type Generator struct {
	templates    ports.TemplateSource
	store        ports.OutputStore
	installation ports.Installation
	settings     Settings

	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	progress     ports.ProgressReporter
	now          func() time.Time
	newID        func() string
	catalog      ports.AnimationCatalog
	thumbnails   ports.ThumbnailProvider
	requireModes bool
	gestures     []domain.HandGesture
}

// New creates a generator. Settings with a non-positive budget use DefaultEmoteBudget.
func New(templates ports.TemplateSource, store ports.OutputStore, installation ports.Installation, settings Settings, opts ...Option) *Generator {
	if settings.EmoteBudget <= 0 {
		settings.EmoteBudget = DefaultEmoteBudget
	}
	g := &Generator{
		templates:    templates,
		store:        store,
		installation: installation,
		settings:     settings,
		logger:       logging.NewNop(),
		lockTTL:      30 * time.Second,
		progress:     nopProgress{},
		now:          time.Now,
		newID:        uuid.NewString,
		gestures:     domain.AllGestures,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Settings returns the settings passes run with.
func (g *Generator) Settings() Settings { return g.settings }

// Result is everything a successful pass produced.
type Result struct {
	Output     string
	Manifest   domain.Manifest
	Controller ports.ControllerSink
	Menu       *domain.ExMenu
	Parameters []domain.ParameterConfig
	Report     Report
	Cleaned    []string
}

// Generate runs one pass. Either every artifact is written and installed or the
// pass fails and its output is discarded. A cleanup failure after install returns
// both the result and a *domain.CleanupError.
func (g *Generator) Generate(ctx context.Context, menu *domain.Menu) (res *Result, err error) {
	if menu == nil {
		return nil, &domain.ConfigurationError{Reason: "menu is nil"}
	}
	passID := g.newID()
	started := g.now()
	target := g.settings.TargetFor(menu.ID)
	logger := g.logger.With("pass_id", passID, "menu", menu.ID)

	defer g.progress.Clear()
	g.progress.Report("Start FX controller generation.", 0)

	var (
		outName string
		p       *pass
	)
	defer func() {
		if err != nil {
			logger.Error("Generation failed", "err", err)
		}
		if g.hooks.OnPassFinished != nil {
			evt := &domain.PassEvent{
				EventBase: domain.EventBase{Timestamp: g.now(), Type: domain.EventPassFinished, PassID: passID},
				Output:    outName,
				Duration:  g.now().Sub(started),
				Err:       err,
			}
			if p != nil {
				evt.Compressed = p.regime == emote.Compressed
				evt.Warnings = len(p.report.Warnings)
			}
			g.hooks.OnPassFinished(ctx, evt)
		}
	}()

	if g.locker != nil {
		unlock, lockErr := g.locker.Lock(ctx, LockKey, g.lockTTL)
		if lockErr != nil {
			return nil, fmt.Errorf("failed to acquire generation lock: %w", lockErr)
		}
		defer func() {
			if unlockErr := unlock(context.WithoutCancel(ctx)); unlockErr != nil {
				logger.Warn("Failed to release generation lock", "err", unlockErr)
			}
		}()
	}

	catalog := g.catalog
	if catalog == nil {
		catalog = newMenuCatalog(menu)
	}
	entries, err := emote.Flatten(menu, ModeNamer(catalog, g.settings.Labels.NoExpression))
	if err != nil {
		return nil, err
	}
	if g.requireModes && len(entries) == 0 {
		return nil, &domain.ConfigurationError{Path: menu.ID, Reason: "the configuration has no modes"}
	}
	total := emote.TotalEmoteCount(entries)
	regime := emote.DecideRegime(total, g.settings.EmoteBudget, g.settings.ForceCompressed)
	logger.Info("Flattened configuration", "modes", len(entries), "emotes", total, "regime", regime.String())

	g.progress.Report("Creating fx controller...", 0)
	sink, err := g.templates.Template(ctx)
	if err != nil {
		return nil, &domain.ResourceError{Op: "copy template", Err: err}
	}
	for _, name := range RequiredLayers {
		if !sink.HasLayer(name) {
			return nil, &domain.TemplateMissingError{Layer: name}
		}
	}

	g.progress.Report("Creating output...", 0)
	outName, err = output.Allocate(ctx, g.store, g.settings.OutputPrefix, started)
	if err != nil {
		return nil, err
	}
	logger = logger.With("output", outName)
	defer func() {
		if err != nil && res == nil {
			if delErr := g.store.Delete(context.WithoutCancel(ctx), outName); delErr != nil {
				logger.Warn("Failed to discard partial output", "err", delErr)
			}
		}
	}()

	p = &pass{
		settings:   g.settings,
		menu:       menu,
		entries:    entries,
		byMode:     make(map[*domain.Mode]emote.ModeEntry, len(entries)),
		regime:     regime,
		catalog:    catalog,
		store:      g.store,
		output:     outName,
		icons:      make(map[string]domain.Icon),
		gestures:   g.gestures,
		logger:     logger,
		progress:   g.progress,
		thumbnails: g.thumbnails,
	}
	for _, e := range entries {
		p.byMode[e.Mode] = e
	}

	states, transitions, err := g.emitLayers(ctx, passID, sink, p)
	if err != nil {
		return nil, err
	}

	g.progress.Report("Generating ExMenu...", 0)
	exMenu, err := p.buildMenu(ctx)
	if err != nil {
		return nil, err
	}

	defaultMode := emote.DefaultModeIndex(entries, menu.DefaultSelection)
	params := Parameters(g.settings, defaultMode)
	manifest := domain.Manifest{
		PassID:           passID,
		Output:           outName,
		MenuID:           menu.ID,
		Target:           target,
		GeneratedAt:      started,
		Compressed:       regime == emote.Compressed,
		ModeCount:        len(entries),
		EmoteCount:       total,
		DefaultModeIndex: defaultMode,
		StateCount:       states,
		TransitionCount:  transitions,
		Warnings:         p.report.Warnings,
	}

	g.progress.Report("Writing artifacts...", 0.8)
	artifacts := []struct {
		key   string
		value any
	}{
		{domain.ArtifactController, sink},
		{domain.ArtifactMenu, exMenu},
		{domain.ArtifactParameters, params},
		{domain.ArtifactManifest, manifest},
	}
	for _, a := range artifacts {
		data, mErr := json.MarshalIndent(a.value, "", "  ")
		if mErr != nil {
			return nil, &domain.ResourceError{Op: "encode " + a.key, Err: mErr}
		}
		if pErr := g.store.Put(ctx, outName, a.key, data); pErr != nil {
			return nil, &domain.ResourceError{Op: "write " + a.key, Err: pErr}
		}
	}

	g.progress.Report("Installing controller...", 0.9)
	ref := domain.ArtifactRef{Output: outName, Key: domain.ArtifactController}
	if err := g.installation.Install(ctx, target, ref); err != nil {
		return nil, &domain.ResourceError{Op: "install " + outName, Err: err}
	}

	res = &Result{
		Output:     outName,
		Manifest:   manifest,
		Controller: sink,
		Menu:       exMenu,
		Parameters: params,
		Report:     p.report,
	}

	g.progress.Report("Cleaning assets...", 0.95)
	collector := output.NewCollector(g.store, g.installation,
		output.WithPrefix(g.settings.OutputPrefix),
		output.WithLogger(logger),
		output.WithHooks(g.hooks),
	)
	res.Cleaned, err = collector.Clean(ctx)
	if err != nil {
		return res, err
	}

	g.progress.Report("Done!", 1)
	logger.Info("Generation finished",
		"states", states,
		"transitions", transitions,
		"warnings", len(p.report.Warnings),
		"cleaned", len(res.Cleaned),
	)
	return res, nil
}

func (g *Generator) emitLayers(ctx context.Context, passID string, sink ports.ControllerSink, p *pass) (states, transitions int, err error) {
	record := func(layer *domain.Layer) error {
		if err := sink.ReplaceLayer(layer); err != nil {
			return err
		}
		s, t := layer.StateMachine.Count()
		states += s
		transitions += t
		p.logger.Debug("Layer emitted", "layer", layer.Name, "states", s, "transitions", t)
		if g.hooks.OnLayerEmitted != nil {
			g.hooks.OnLayerEmitted(ctx, &domain.LayerEvent{
				EventBase:   domain.EventBase{Timestamp: g.now(), Type: domain.EventLayerEmitted, PassID: passID},
				Layer:       layer.Name,
				States:      s,
				Transitions: t,
			})
		}
		return nil
	}

	for _, emit := range []func() *domain.Layer{p.emitSetControl, p.emitDefaultFace, p.emitEmotePlayer} {
		if err := record(emit()); err != nil {
			return 0, 0, err
		}
	}

	g.progress.Report(fmt.Sprintf("Modifying %q layer...", domain.LayerBlink), 0)
	blink, canceler := p.modifierMotions()
	if err := sink.SetStateMotion(domain.LayerBlink, domain.StateBlinkEnabled, blink); err != nil {
		return 0, 0, err
	}
	g.progress.Report(fmt.Sprintf("Modifying %q layer...", domain.LayerMouthMorphCanceler), 0)
	if err := sink.SetStateMotion(domain.LayerMouthMorphCanceler, domain.StateMouthMorphCancelerOn, canceler); err != nil {
		return 0, 0, err
	}

	for _, param := range p.controllerParameters() {
		sink.AddParameter(param.Name, param.Type)
	}
	return states, transitions, nil
}

// pass is the state of one generation run.
type pass struct {
	settings   Settings
	menu       *domain.Menu
	entries    []emote.ModeEntry
	byMode     map[*domain.Mode]emote.ModeEntry
	regime     emote.Regime
	catalog    ports.AnimationCatalog
	thumbnails ports.ThumbnailProvider
	store      ports.OutputStore
	output     string
	icons      map[string]domain.Icon
	gestures   []domain.HandGesture
	report     Report
	logger     *slog.Logger
	progress   ports.ProgressReporter
}

func (p *pass) step(message string, i, n int) {
	if n <= 0 {
		return
	}
	p.progress.Report(message, float64(i)/float64(n))
}

// substep reports item j of m inside step i of n.
func (p *pass) substep(message string, i, n, j, m int) {
	if n <= 0 || m <= 0 {
		return
	}
	p.progress.Report(message, (float64(i)+float64(j)/float64(m))/float64(n))
}

type nopProgress struct{}

func (nopProgress) Report(string, float64) {}
func (nopProgress) Clear()                 {}
