// Package output names generated namespaces and removes the ones no longer in use.
package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/suzuryg/facial-expression-switcher/internal/logging"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// TimestampLayout is the timestamp part of generated namespace names.
const TimestampLayout = "20060102_150405"

// maxAttempts bounds collision suffixing within one second.
const maxAttempts = 100

// Name is the namespace name for a pass started at now.
func Name(prefix string, now time.Time) string {
	return prefix + now.Format(TimestampLayout)
}

// Allocate creates a fresh namespace, appending "_1", "_2"... when the name is taken.
func Allocate(ctx context.Context, store ports.OutputStore, prefix string, now time.Time) (string, error) {
	base := Name(prefix, now)
	name := base
	for i := 1; i <= maxAttempts; i++ {
		err := store.Create(ctx, name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, domain.ErrOutputExists) {
			return "", &domain.ResourceError{Op: "create output " + name, Err: err}
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return "", &domain.ResourceError{Op: "create output " + base, Err: domain.ErrOutputExists}
}

// Collector deletes outputs that no installed controller references.
type Collector struct {
	store        ports.OutputStore
	installation ports.Installation
	prefix       string
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithPrefix restricts collection to namespaces starting with prefix.
func WithPrefix(prefix string) CollectorOption {
	return func(c *Collector) { c.prefix = prefix }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) { c.logger = logger }
}

// WithHooks sets the lifecycle hooks. Only OnCleaned is used.
func WithHooks(hooks domain.LifecycleHooks) CollectorOption {
	return func(c *Collector) { c.hooks = hooks }
}

// NewCollector creates a collector over a store and the installation that protects its outputs.
func NewCollector(store ports.OutputStore, installation ports.Installation, opts ...CollectorOption) *Collector {
	c := &Collector{
		store:        store,
		installation: installation,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean deletes every unreferenced output and returns the deleted names.
// Running it twice in a row deletes nothing the second time.
func (c *Collector) Clean(ctx context.Context) ([]string, error) {
	installed, err := c.installation.Installed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read installation: %w", err)
	}
	referenced := make(map[string]bool, len(installed))
	for _, ref := range installed {
		referenced[ref.Output] = true
	}

	names, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}

	var deleted []string
	for _, name := range names {
		if referenced[name] || !strings.HasPrefix(name, c.prefix) {
			continue
		}
		if err := c.store.Delete(ctx, name); err != nil {
			if errors.Is(err, domain.ErrOutputNotFound) {
				continue
			}
			return deleted, &domain.CleanupError{Output: name, Err: err}
		}
		deleted = append(deleted, name)
		c.logger.Debug("Deleted stale output", "output", name)
		if c.hooks.OnCleaned != nil {
			c.hooks.OnCleaned(ctx, &domain.CleanupEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCleaned},
				Output:    name,
			})
		}
	}
	return deleted, nil
}
