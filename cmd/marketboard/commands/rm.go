package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/market"
)

// rm <id>: delete a listing after a y/N prompt.
func rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()
			if _, ok := appCtx.Market().Get(id); !ok {
				return fmt.Errorf("no listing with id %q", id)
			}

			confirm := promptConfirm(cmd.InOrStdin(), out)
			if yes {
				confirm = func(domain.Listing) bool { return true }
			}

			deleted, err := appCtx.Market().Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(out, "cancelled")
				return nil
			}
			fmt.Fprintf(out, "deleted %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func promptConfirm(in io.Reader, out io.Writer) market.Confirm {
	return func(l domain.Listing) bool {
		fmt.Fprintf(out, "Delete %q? [y/N]: ", l.Title)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
