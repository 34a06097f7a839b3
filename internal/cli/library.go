package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/spf13/cobra"
)

func newLibraryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Manage the wallpaper library",
	}

	cmd.AddCommand(
		newLibraryListCmd(opts),
		newLibraryAddFileCmd(opts),
		newLibraryAddURLCmd(opts),
		newLibraryAddCurrentCmd(opts),
		newLibraryRemoveCmd(opts),
	)
	return cmd
}

func newLibraryListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List library items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				items, err := rt.store.List(ctx)
				if err != nil {
					return err
				}
				current, err := rt.store.GetCurrent(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "\tID\tTYPE\tRESOLUTION\tTITLE")
				for _, w := range items {
					marker := ""
					if current != nil && current.ID == w.ID {
						marker = "*"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, w.ID, w.SourceType, w.Resolution, w.Info.Title)
				}
				if err := tw.Flush(); err != nil {
					return err
				}

				used, err := rt.adapter.Usage(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d items, %s of %s used\n",
					len(items), formatBytes(used), formatBytes(rt.cfg.GetQuotaBytes()))
				return nil
			})
		},
	}
}

func newLibraryAddFileCmd(opts *globalOptions) *cobra.Command {
	var setCurrent bool

	cmd := &cobra.Command{
		Use:   "add-file PATH",
		Short: "Upload an image file into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				w, err := rt.uploads.FromFile(ctx, args[0])
				if err != nil {
					return err
				}
				return addUpload(ctx, cmd, rt, w, setCurrent)
			})
		},
	}
	cmd.Flags().BoolVar(&setCurrent, "set-current", false, "Also make it the current wallpaper")
	return cmd
}

func newLibraryAddURLCmd(opts *globalOptions) *cobra.Command {
	var setCurrent bool

	cmd := &cobra.Command{
		Use:   "add-url URL",
		Short: "Download an image and keep a local copy in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				w, err := rt.uploads.FromURL(ctx, args[0])
				if err != nil {
					return err
				}
				return addUpload(ctx, cmd, rt, w, setCurrent)
			})
		},
	}
	cmd.Flags().BoolVar(&setCurrent, "set-current", false, "Also make it the current wallpaper")
	return cmd
}

func addUpload(ctx context.Context, cmd *cobra.Command, rt *runtime, w domain.Wallpaper, setCurrent bool) error {
	if _, err := rt.engine.AddToLibrary(ctx, w); err != nil {
		return err
	}
	if setCurrent {
		if err := rt.engine.SetCurrent(ctx, w); err != nil {
			return err
		}
		rt.announce(ctx, w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s, %s)\n", w.ID, w.Resolution, formatBytes(w.Info.FileSize))
	return nil
}

func newLibraryAddCurrentCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-current",
		Short: "Save the current wallpaper into the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				current, err := rt.store.GetCurrent(ctx)
				if err != nil {
					return err
				}
				if current == nil {
					return errors.New("there is no current wallpaper yet")
				}

				added, err := rt.engine.AddToLibrary(ctx, *current)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in the library\n", current.ID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", current.ID)
				return nil
			})
		},
	}
}

func newLibraryRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the library",
		Long: `Removes an item from the library. If it is the current wallpaper a
replacement is chosen and every open page is told about it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				removed, replacement, err := rt.engine.RemoveFromLibrary(ctx, args[0])
				if errors.Is(err, domain.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not in the library\n", args[0])
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", removed.ID)
				if replacement != nil {
					rt.announce(ctx, *replacement)
					fmt.Fprintf(cmd.OutOrStdout(), "current wallpaper is now %s\n", replacement.ID)
				}
				return nil
			})
		},
	}
}
