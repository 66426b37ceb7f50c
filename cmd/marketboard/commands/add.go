package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
)

// add: create a listing from flags.
func addCmd() *cobra.Command {
	var d domain.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := appCtx.Market().Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s: %s, %s\n",
				l.ID, l.Title, domain.FormatPrice(l.Price, l.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&d.Title, "title", "t", "", "title (required)")
	cmd.Flags().StringVarP(&d.Description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&d.Price, "price", "p", "", "price in "+domain.DefaultCurrency+" (required)")
	cmd.Flags().StringVarP(&d.Category, "category", "c", "", "category (default "+domain.DefaultCategory+")")
	cmd.Flags().StringVarP(&d.Location, "location", "l", "", "location (default "+domain.LocationLocal+")")
	cmd.Flags().StringVar(&d.Contact, "contact", "", "phone number or other contact")
	return cmd
}
