package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// options: print the filter and sort choices for the current board.
func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show category, location and sort choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := appCtx.Market().Options()
			sorts := make([]string, 0, len(o.SortModes))
			for _, m := range o.SortModes {
				sorts = append(sorts, string(m))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "categories: %s\n", strings.Join(o.Categories, ", "))
			fmt.Fprintf(out, "locations:  %s\n", strings.Join(o.Locations, ", "))
			fmt.Fprintf(out, "suggested:  %s\n", strings.Join(o.SuggestedCategories, ", "))
			fmt.Fprintf(out, "sort:       %s\n", strings.Join(sorts, ", "))
			return nil
		},
	}
}
