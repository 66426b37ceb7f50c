package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
)

// list: show the board through the search, filters and sort.
func listCmd() *cobra.Command {
	var (
		text     string
		category string
		location string
		sortMode string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := appCtx.Market().Browse(domain.Query{
				Text:     text,
				Category: category,
				Location: location,
				Sort:     domain.ParseSortMode(sortMode),
			})

			out := cmd.OutOrStdout()
			if page.Count == 0 {
				fmt.Fprintln(out, page.Message)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCATEGORY\tLOCATION\tCONTACT")
			for _, l := range page.Listings {
				contact := l.Contact
				if link, ok := domain.ContactLink(l.Contact); ok {
					contact = link
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					l.ID, l.Title, domain.FormatPrice(l.Price, l.Currency), l.Category, l.Location, contact)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d of %d listings\n", page.Count, page.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "search title, description and category")
	cmd.Flags().StringVar(&category, "category", domain.FilterAll, "category filter")
	cmd.Flags().StringVar(&location, "location", domain.FilterAll, "location filter")
	cmd.Flags().StringVar(&sortMode, "sort", string(domain.SortNewest), "newest, price_asc or price_desc")
	return cmd
}
