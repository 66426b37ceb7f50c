package commands

import (
	"github.com/spf13/cobra"
)

// serve: run the HTTP API until interrupted.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Run()
		},
	}
}
