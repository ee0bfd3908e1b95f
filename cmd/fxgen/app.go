package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/internal/config"
	"github.com/suzuryg/facial-expression-switcher/internal/dto"
	"github.com/suzuryg/facial-expression-switcher/internal/logging"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/file"
	loamAdapter "github.com/suzuryg/facial-expression-switcher/pkg/adapters/loam"
	redisAdapter "github.com/suzuryg/facial-expression-switcher/pkg/adapters/redis"
	"github.com/suzuryg/facial-expression-switcher/pkg/adapters/thumbnail"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
	"github.com/suzuryg/facial-expression-switcher/pkg/observability"
	"github.com/suzuryg/facial-expression-switcher/pkg/ports"
)

// app holds the adapters selected by the configuration.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	menus        ports.MenuSource
	watcher      *loamAdapter.Loader // nil unless menus come from Loam
	store        ports.OutputStore
	installation ports.Installation
	templates    ports.TemplateSource
	locker       ports.DistributedLocker
	metrics      *observability.Metrics

	closers []func() error
}

// newApp loads the configuration named by the persistent flags and builds the adapters.
func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides, _ := cmd.Flags().GetStringArray("set")

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.Log.Format)),
		templates: file.NewTemplate(cfg.Template),
		metrics:   observability.NewMetrics(),
	}

	if err := a.openMenus(); err != nil {
		return nil, err
	}
	a.openStore()
	return a, nil
}

func (a *app) openMenus() error {
	if a.cfg.Menus.Backend == config.BackendFile {
		a.menus = file.NewMenuSource(a.cfg.Menus.Dir)
		return nil
	}

	absPath, err := filepath.Abs(a.cfg.Menus.Dir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across JSON and Markdown documents;
	// the generator never writes menus back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize loam: %w", err)
	}
	a.watcher = loamAdapter.New(loam.NewTypedRepository[dto.MenuDocument](repo))
	a.menus = a.watcher
	return nil
}

func (a *app) openStore() {
	sc := a.cfg.Store
	if sc.Backend == config.BackendFile {
		a.store = file.New(sc.Dir)
		a.installation = file.NewInstallation(sc.Installation)
		return
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     sc.Redis.Addr,
		Password: sc.Redis.Password,
		DB:       sc.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)
	a.store = redisAdapter.NewFromClient(client, redisAdapter.WithPrefix(sc.Redis.Prefix))
	a.installation = redisAdapter.NewInstallation(client, redisAdapter.WithPrefix(sc.Redis.Prefix))
	if a.cfg.Lock.Enabled {
		a.locker = redisAdapter.NewLocker(client, sc.Redis.Prefix)
	}
}

// generator builds a generator wired to the configured adapters and metrics.
func (a *app) generator(hooks domain.LifecycleHooks, opts ...generator.Option) *generator.Generator {
	all := []generator.Option{
		generator.WithLogger(a.logger),
		generator.WithLifecycleHooks(observability.Combine(
			observability.LogHooks(a.logger),
			a.metrics.Hooks(),
			hooks,
		)),
	}
	if a.cfg.Generator.GenerateThumbnails {
		all = append(all, generator.WithThumbnails(thumbnail.New(
			thumbnail.WithSize(a.cfg.Thumbnails.Size),
			thumbnail.WithPreviewDir(a.cfg.Thumbnails.PreviewDir),
		)))
	}
	if a.locker != nil {
		all = append(all, generator.WithLocker(a.locker, a.cfg.Lock.TTL))
	}
	return generator.New(a.templates, a.store, a.installation, a.cfg.Generator, append(all, opts...)...)
}

// flushMetrics writes the textfile export when one is configured.
func (a *app) flushMetrics() {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := a.metrics.WriteToTextfile(a.cfg.MetricsTextfile); err != nil {
		a.logger.Warn("Failed to write metrics textfile", "path", a.cfg.MetricsTextfile, "err", err)
	}
}

// controller loads the controller artifact of output. An empty name selects the
// output installed below the configured target, which must be unambiguous.
func (a *app) controller(ctx context.Context, output string) (*domain.Controller, string, error) {
	key := domain.ArtifactController
	if output == "" {
		ref, err := a.installed(ctx)
		if err != nil {
			return nil, "", err
		}
		output, key = ref.Output, ref.Key
	}

	data, err := a.store.Get(ctx, output, key)
	if err != nil {
		return nil, "", err
	}
	var ctrl domain.Controller
	if err := json.Unmarshal(data, &ctrl); err != nil {
		return nil, "", fmt.Errorf("failed to decode %s/%s: %w", output, key, err)
	}
	return &ctrl, output, nil
}

func (a *app) installed(ctx context.Context) (domain.ArtifactRef, error) {
	refs, err := a.installation.Installed(ctx)
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("failed to read installation: %w", err)
	}
	base := a.cfg.Generator.InstallTarget
	var targets []string
	for target := range refs {
		if target == base || strings.HasPrefix(target, base+"/") {
			targets = append(targets, target)
		}
	}
	switch len(targets) {
	case 0:
		return domain.ArtifactRef{}, fmt.Errorf("nothing is installed on target %q", base)
	case 1:
		return refs[targets[0]], nil
	default:
		sort.Strings(targets)
		return domain.ArtifactRef{}, fmt.Errorf("several targets are installed (%s), name an output", strings.Join(targets, ", "))
	}
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
