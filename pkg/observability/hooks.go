package observability

import (
	"context"
	"log/slog"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// LogHooks logs every lifecycle event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerEmitted: func(ctx context.Context, e *domain.LayerEvent) {
			logger.DebugContext(ctx, "Layer emitted", "pass_id", e.PassID, "layer", e.Layer,
				"states", e.States, "transitions", e.Transitions)
		},
		OnPassFinished: func(ctx context.Context, e *domain.PassEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Pass failed", "pass_id", e.PassID, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Pass finished", "pass_id", e.PassID, "output", e.Output,
				"duration", e.Duration, "warnings", e.Warnings)
		},
		OnCleaned: func(ctx context.Context, e *domain.CleanupEvent) {
			logger.DebugContext(ctx, "Output cleaned", "output", e.Output)
		},
	}
}

// Combine fans every event out to each hook set in order. Nil callbacks are skipped.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	var layer []func(context.Context, *domain.LayerEvent)
	var pass []func(context.Context, *domain.PassEvent)
	var clean []func(context.Context, *domain.CleanupEvent)
	for _, h := range sets {
		if h.OnLayerEmitted != nil {
			layer = append(layer, h.OnLayerEmitted)
		}
		if h.OnPassFinished != nil {
			pass = append(pass, h.OnPassFinished)
		}
		if h.OnCleaned != nil {
			clean = append(clean, h.OnCleaned)
		}
	}
	if len(layer) > 0 {
		out.OnLayerEmitted = func(ctx context.Context, e *domain.LayerEvent) {
			for _, fn := range layer {
				fn(ctx, e)
			}
		}
	}
	if len(pass) > 0 {
		out.OnPassFinished = func(ctx context.Context, e *domain.PassEvent) {
			for _, fn := range pass {
				fn(ctx, e)
			}
		}
	}
	if len(clean) > 0 {
		out.OnCleaned = func(ctx context.Context, e *domain.CleanupEvent) {
			for _, fn := range clean {
				fn(ctx, e)
			}
		}
	}
	return out
}
