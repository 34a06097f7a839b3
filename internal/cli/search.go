package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		page       int
		nsfw       string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search the remote provider",
		Example: `  # Browse the first page of everything
  wallctl search

  # Second page of anime landscapes
  wallctl search landscape --category anime --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.NsfwFilter(nsfw)
			if !filter.Valid() {
				return fmt.Errorf("unknown content filter %q (want off, allowed or only)", nsfw)
			}
			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}

			q := domain.SearchQuery{
				Text:    strings.Join(args, " "),
				Page:    page,
				Filters: domain.SearchFilters{Categories: cats, Nsfw: filter},
			}

			return opts.run(cmd, func(ctx context.Context, rt *runtime) error {
				result := rt.provider.Search(ctx, q)

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tRESOLUTION\tPURITY\tSOURCE")
				for _, w := range result.Items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.ID, w.Resolution, w.Info.Purity, w.Source)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d, %d results\n",
					result.PageInfo.CurrentPage, result.PageInfo.LastPage, result.PageInfo.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Result page")
	cmd.Flags().StringVar(&nsfw, "nsfw", string(domain.NsfwOff), "Content filter: off, allowed or only")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Restrict to general, anime or people (repeatable)")

	return cmd
}

func parseCategories(names []string) (domain.Categories, error) {
	var cats domain.Categories
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "general":
			cats.General = true
		case "anime":
			cats.Anime = true
		case "people":
			cats.People = true
		default:
			return domain.Categories{}, fmt.Errorf("unknown category %q", name)
		}
	}
	return cats, nil
}
