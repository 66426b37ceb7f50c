package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marketboard/internal/market"
)

// export [-o file]: write every listing as an indented JSON array.
func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all listings to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "-" {
				return appCtx.Market().Export(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := appCtx.Market().Export(cmd.Context(), f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d listings to %s\n", len(appCtx.Market().Listings()), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", market.ExportFilename, `output file, "-" for stdout`)
	return cmd
}

// import <file>: prepend the listings of a JSON file ("-" reads stdin).
func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Prepend listings from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open import file: %w", err)
				}
				defer f.Close()
				r = f
			}

			res, err := appCtx.Market().Import(cmd.Context(), r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d listings, %d on the board\n", res.Imported, res.Total)
			if res.Duplicates > 0 {
				fmt.Fprintf(out, "warning: %d imported listings reuse an existing id\n", res.Duplicates)
			}
			return nil
		},
	}
}
