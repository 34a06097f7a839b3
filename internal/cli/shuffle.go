package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/spf13/cobra"
)

func newShuffleCmd(opts *globalOptions) *cobra.Command {
	var source, nsfw string

	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Pick a new wallpaper now",
		Long: `Asks the daemon to shuffle the wallpaper. Without flags the persisted
refresh source and content filter are used.`,
		Example: `  # Shuffle using the saved preferences
  wallctl shuffle

  # Draw from the provider, allowing any content rating
  wallctl shuffle --source browse --nsfw allowed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.Request{
				Type:       domain.MsgShuffleWallpaper,
				Source:     domain.RefreshSource(source),
				NsfwFilter: domain.NsfwFilter(nsfw),
			}
			if source != "" && !req.Source.Valid() {
				return fmt.Errorf("unknown source %q (want library or browse)", source)
			}
			if nsfw != "" && !req.NsfwFilter.Valid() {
				return fmt.Errorf("unknown content filter %q (want off, allowed or only)", nsfw)
			}

			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				resp, err := rt.bus.Send(ctx, req)
				if err != nil {
					return err
				}
				if !resp.Success {
					return errors.New(resp.Error)
				}
				if resp.Wallpaper != nil {
					printWallpaper(cmd.OutOrStdout(), *resp.Wallpaper)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Pool to draw from: library or browse")
	cmd.Flags().StringVar(&nsfw, "nsfw", "", "Content filter: off, allowed or only")

	return cmd
}

func newCurrentCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current wallpaper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				current, err := rt.store.GetCurrent(ctx)
				if err != nil {
					return err
				}
				w := domain.DefaultWallpaper
				if current != nil {
					w = *current
				}
				printWallpaper(cmd.OutOrStdout(), w)
				return nil
			})
		},
	}
}
