package cli

import (
	"github.com/spf13/cobra"
)

const defaultConfigFile = "./config.yaml"

// NewRootCmd builds the currencytracker command tree.
func NewRootCmd(version string) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "currencytracker",
		Short:         "Currency rates web application backed by the CBR daily feed",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "Path to config file")

	rootCmd.AddCommand(serveCmd(&configFile), fetchCmd(&configFile))
	return rootCmd
}

func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
