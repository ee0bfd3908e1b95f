package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/suzuryg/facial-expression-switcher/internal/presentation/tui"
	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
	"github.com/suzuryg/facial-expression-switcher/pkg/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [menu-id...]",
	Short: "Generate and install the controller for one or more menus",
	Long: `Runs a generation pass per menu (all menus when none is named). Each pass writes a
new output, installs its controller and removes outputs nothing references anymore.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		watch, _ := cmd.Flags().GetBool("watch")
		quiet, _ := cmd.Flags().GetBool("quiet")
		requireModes, _ := cmd.Flags().GetBool("require-modes")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen := a.generator(domain.LifecycleHooks{},
			generator.WithProgress(tui.NewProgress(os.Stderr)),
			generator.WithRequireModes(requireModes),
		)
		out := cmd.OutOrStdout()
		if quiet {
			out = io.Discard
		}

		ids := args
		if len(ids) == 0 {
			if ids, err = a.menus.ListMenus(ctx); err != nil {
				return err
			}
		}
		var errs []error
		for _, id := range ids {
			errs = append(errs, runPass(ctx, a, gen, id, out))
		}
		if err := errors.Join(errs...); err != nil && !watch {
			return err
		}
		if !watch {
			return nil
		}
		return watchMenus(ctx, a, gen, args, out)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever a menu document changes (loam menus only)")
	generateCmd.Flags().BoolP("quiet", "q", false, "Do not print the generation report")
	generateCmd.Flags().Bool("require-modes", false, "Fail when a menu has no modes")
}

func runPass(ctx context.Context, a *app, gen *generator.Generator, id string, out io.Writer) error {
	defer a.flushMetrics()

	menu, err := a.menus.LoadMenu(ctx, id)
	if err != nil {
		return err
	}
	res, err := gen.Generate(ctx, menu)
	if res == nil {
		return fmt.Errorf("menu %s: %w", id, err)
	}
	if err != nil {
		// Installed, only the cleanup failed.
		a.logger.Warn("Generation finished with cleanup errors", "menu", id, "err", err)
	}

	render := tui.NewRenderer()
	report, rErr := render(tui.ManifestMarkdown(res.Manifest, res.Cleaned))
	if rErr != nil {
		return rErr
	}
	fmt.Fprint(out, report)
	return nil
}

// watchMenus reruns passes for changed documents until ctx is canceled. With ids
// given, other documents are ignored.
func watchMenus(ctx context.Context, a *app, gen *generator.Generator, ids []string, out io.Writer) error {
	if a.watcher == nil {
		return errors.New("--watch needs menus.backend = loam")
	}
	events, err := a.watcher.Watch(ctx)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	a.logger.Info("Watching menus", "dir", a.cfg.Menus.Dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-events:
			if !ok {
				return nil
			}
			if len(wanted) > 0 && !wanted[id] {
				continue
			}
			a.logger.Info("Menu changed", "menu", id)
			if err := runPass(ctx, a, gen, id, out); err != nil {
				a.logger.Error("Generation failed", "menu", id, "err", err)
			}
		}
	}
}
