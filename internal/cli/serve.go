package cli

import (
	"currencytracker/internal/app"

	"github.com/spf13/cobra"
)

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.Run(*configFile)
		},
	}
}
