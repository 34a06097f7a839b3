// Package cli implements wallctl, the foreground control tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/genricoloni/wallsync/internal/app"
	"github.com/genricoloni/wallsync/internal/bus"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/library"
	"github.com/genricoloni/wallsync/internal/shuffle"
	"github.com/genricoloni/wallsync/internal/storage"
	"github.com/genricoloni/wallsync/internal/upload"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type globalOptions struct {
	envFile string
	verbose bool
}

// runtime is the foreground context: it reads and writes the shared store
// directly and reaches the background context over the bus.
type runtime struct {
	logger   *zap.Logger
	cfg      domain.Config
	store    *library.Store
	adapter  *storage.Adapter
	engine   *shuffle.Engine
	uploads  *upload.Processor
	provider domain.Provider
	bus      *bus.Client
}

// announce tells the other contexts that the current wallpaper changed.
// Failure is not fatal: the change is already persisted.
func (rt *runtime) announce(ctx context.Context, w domain.Wallpaper) {
	if err := rt.bus.NotifyWallpaperChanged(ctx, w); err != nil {
		rt.logger.Warn("Failed to announce wallpaper change", zap.Error(err))
	}
}

// NewRootCmd builds the wallctl command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "wallctl",
		Short: "Control the wallsync wallpaper engine",
		Long: `wallctl manages the wallpaper library and talks to the wallsync daemon.

Shuffles and settings changes are executed by the daemon; library edits are
written to the shared store directly and announced to every open page.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.envFile != "" {
				return godotenv.Load(opts.envFile)
			}
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load configuration from this file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newShuffleCmd(opts),
		newCurrentCmd(opts),
		newLibraryCmd(opts),
		newSettingsCmd(opts),
		newSearchCmd(opts),
		newWatchCmd(opts),
	)

	return cmd
}

func newLogger(verbose bool, out io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level))
}

// run builds the shared dependency graph, runs fn and tears the graph down
func (o *globalOptions) run(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt := &runtime{logger: newLogger(o.verbose, cmd.ErrOrStderr())}
	defer func() { _ = rt.logger.Sync() }()

	container := fx.New(
		fx.Supply(rt.logger),
		app.Core,
		fx.NopLogger,
		fx.Populate(&rt.cfg, &rt.store, &rt.adapter, &rt.engine, &rt.uploads, &rt.provider, &rt.bus),
	)
	if err := container.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := container.Start(ctx); err != nil {
		return fmt.Errorf("failed to connect to the store: %w", err)
	}
	defer func() {
		if err := container.Stop(context.Background()); err != nil {
			rt.logger.Warn("Shutdown failed", zap.Error(err))
		}
	}()

	return fn(ctx, rt)
}

func printWallpaper(out io.Writer, w domain.Wallpaper) {
	fmt.Fprintf(out, "%s\n", w.ID)
	fmt.Fprintf(out, "  title:      %s\n", w.Info.Title)
	fmt.Fprintf(out, "  source:     %s (%s)\n", w.Source, w.SourceType)
	if w.Resolution != "" {
		fmt.Fprintf(out, "  resolution: %s\n", w.Resolution)
	}
	fmt.Fprintf(out, "  path:       %s\n", abbreviate(w.Path))
	if len(w.Info.Tags) > 0 {
		fmt.Fprintf(out, "  tags:       %s\n", strings.Join(w.Info.Tags, ", "))
	}
}

// abbreviate shortens embedded data URLs for display
func abbreviate(path string) string {
	if strings.HasPrefix(path, "data:") && len(path) > 48 {
		return path[:48] + "..."
	}
	return path
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
