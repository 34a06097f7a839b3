package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genricoloni/wallsync/internal/bus"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSettingsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change shuffle preferences",
	}
	cmd.AddCommand(newSettingsShowCmd(opts), newSettingsSetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted settings and scheduler state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				settings, err := rt.store.Settings(ctx)
				if err != nil {
					return err
				}
				enabled, interval, err := rt.store.ShuffleState(ctx)
				if err != nil {
					return err
				}
				last, ok, err := rt.store.LastShuffleTime(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "source:        %s\n", settings.RefreshSource)
				fmt.Fprintf(out, "nsfw filter:   %s\n", settings.RefreshNsfwFilter)
				fmt.Fprintf(out, "shuffle:       %t\n", settings.IsShuffleEnabled)
				fmt.Fprintf(out, "interval:      %d min\n", settings.ShuffleInterval)
				fmt.Fprintf(out, "on new tab:    %t\n", settings.ShuffleOnNewTab)
				fmt.Fprintf(out, "trigger:       %s\n", settings.Trigger().Kind)
				fmt.Fprintf(out, "alarm armed:   %t (%d min)\n", enabled, interval)
				if ok {
					fmt.Fprintf(out, "last shuffle:  %s\n", last.Local().Format(time.DateTime))
				} else {
					fmt.Fprintln(out, "last shuffle:  never")
				}
				return nil
			})
		},
	}
}

func newSettingsSetCmd(opts *globalOptions) *cobra.Command {
	var (
		source, nsfw      string
		interval          int
		enabled, onNewTab bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change shuffle preferences",
		Long: `Updates the given preferences and asks the daemon to re-evaluate its
schedule. When no daemon is running the change is saved and takes effect on
its next start.`,
		Example: `  # Shuffle every 15 minutes
  wallctl settings set --enabled --interval 15

  # Shuffle whenever a new page opens
  wallctl settings set --enabled=false --interval 0 --new-tab`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.Request{Type: domain.MsgShuffleSettingsUpdated}
			flags := cmd.Flags()

			if flags.Changed("source") {
				req.Source = domain.RefreshSource(source)
				if !req.Source.Valid() {
					return fmt.Errorf("unknown source %q (want library or browse)", source)
				}
			}
			if flags.Changed("nsfw") {
				req.NsfwFilter = domain.NsfwFilter(nsfw)
				if !req.NsfwFilter.Valid() {
					return fmt.Errorf("unknown content filter %q (want off, allowed or only)", nsfw)
				}
			}
			if flags.Changed("interval") {
				if interval < 0 {
					return fmt.Errorf("interval must not be negative")
				}
				req.Interval = &interval
			}
			if flags.Changed("enabled") {
				req.IsEnabled = &enabled
			}
			if flags.Changed("new-tab") {
				req.NewTabEnabled = &onNewTab
			}

			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				listening, err := rt.bus.Listening(ctx)
				if err != nil {
					return err
				}
				if !listening {
					rt.logger.Debug("Daemon not running, saving settings directly")
					return saveSettings(ctx, cmd, rt, req)
				}

				resp, err := rt.bus.Send(ctx, req)
				// The daemon may have stopped between the check and the send
				if errors.Is(err, bus.ErrNoListener) {
					rt.logger.Debug("Daemon not running, saving settings directly")
					return saveSettings(ctx, cmd, rt, req)
				}
				if err != nil {
					return err
				}
				if !resp.Success {
					return errors.New(resp.Error)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "settings updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Pool to draw from: library or browse")
	cmd.Flags().StringVar(&nsfw, "nsfw", "", "Content filter: off, allowed or only")
	cmd.Flags().IntVar(&interval, "interval", 0, "Minutes between shuffles; 0 means on new tab")
	cmd.Flags().BoolVar(&enabled, "enabled", false, "Enable automatic shuffling")
	cmd.Flags().BoolVar(&onNewTab, "new-tab", false, "Shuffle when a new page opens (interval 0)")

	return cmd
}

func saveSettings(ctx context.Context, cmd *cobra.Command, rt *runtime, req domain.Request) error {
	settings, err := rt.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings = settings.Merge(req)
	if err := rt.store.SaveSettings(ctx, settings); err != nil {
		return err
	}

	rt.logger.Info("Settings saved without a daemon", zap.Stringer("trigger", settings.Trigger().Kind))
	fmt.Fprintln(cmd.OutOrStdout(), "settings saved; the daemon applies them on its next start")
	return nil
}
