package generator

import (
	"log/slog"
	"time"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLocker serializes passes on the same menu through a distributed lock.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(g *Generator) {
		g.locker = locker
		g.lockTTL = ttl
	}
}

// WithProgress reports pass progress.
func WithProgress(p ports.ProgressReporter) Option {
	return func(g *Generator) {
		g.progress = p
	}
}

// WithClock overrides the time source used for output names and the manifest.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDGenerator overrides how pass IDs are made.
func WithIDGenerator(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// WithCatalog resolves animations through the host catalog instead of the menu's own list.
func WithCatalog(c ports.AnimationCatalog) Option {
	return func(g *Generator) {
		g.catalog = c
	}
}

// WithThumbnails sets the provider used when Settings.GenerateThumbnails is on.
func WithThumbnails(p ports.ThumbnailProvider) Option {
	return func(g *Generator) {
		g.thumbnails = p
	}
}

// WithRequireModes makes a configuration without any mode a fatal error.
func WithRequireModes(require bool) Option {
	return func(g *Generator) {
		g.requireModes = require
	}
}

// WithGestures overrides the gesture ordering of the decision grid.
func WithGestures(gestures []domain.HandGesture) Option {
	return func(g *Generator) {
		g.gestures = gestures
	}
}
