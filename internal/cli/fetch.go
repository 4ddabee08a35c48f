package cli

import (
	"currencytracker/internal/app"
	"currencytracker/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func fetchCmd(configFile *string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "fetch CODE...",
		Short:   "Fetch current rates for the given codes once and print them",
		Example: "currencytracker fetch USD EUR",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Init(*configFile)
			if err != nil {
				return err
			}

			// rates go to stdout, log records to stderr
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			logger.SetLevel(logrus.WarnLevel)
			if verbose {
				logger.SetLevel(logrus.InfoLevel)
			}

			return app.Fetch(cmd.Context(), appCfg, logger, args, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log the instrumented feed call")
	return cmd
}
