package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print wallpaper changes as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				notifications, err := rt.bus.Subscribe(ctx)
				if err != nil {
					return err
				}

				for n := range notifications {
					if n.Wallpaper == nil {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
						time.Now().Format(time.TimeOnly), n.Wallpaper.ID, n.Wallpaper.Info.Title)
				}
				return nil
			})
		},
	}
}
