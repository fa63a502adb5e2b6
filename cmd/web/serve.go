package main

import (
	"portfolio_backend/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), cfg)
	},
}
