package cmd

import "github.com/spf13/cobra"

type rootOptions struct {
	configPath    string
	logLevel      string
	metricsListen string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ppl",
		Short:         "People browser (ppl): log in and search random persons",
		Long:          "ppl logs in with an email and password, fetches pages of random persons in the background, and lets you filter them by name from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/ppl/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(opts),
		newFetchCmd(opts),
		newRunCmd(opts),
	)

	return rootCmd
}
