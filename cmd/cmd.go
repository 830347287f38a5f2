package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/warmstack/primer/internal/pkg/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "Hypermedia REST API cache warmer",
	Long: `primer walks a hypermedia REST API from a start resource, following every
link it discovers, so the upstream cache is warm before real consumers hit it.
Visited resources are recorded on disk and never fetched twice across runs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize config here, after cobra has parsed command line flags
		if err := config.InitConfig(); err != nil {
			fmt.Printf("error initializing config: %s", err)
			os.Exit(1)
		}

		cfg = config.Get()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Run the root command
func Run() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("config-file", "", "config file (default is $HOME/primer-config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "stdout log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-stdout-log", false, "Disable stdout logging.")
	rootCmd.PersistentFlags().Bool("no-log-file", false, "Disable file logging.")
	rootCmd.PersistentFlags().String("log-file-output-dir", "", "Directory to write log files to. Default is jobs/<job>/logs.")
	rootCmd.PersistentFlags().String("log-file-prefix", "primer", "Prefix to use when naming the log files.")
	rootCmd.PersistentFlags().String("log-file-level", "info", "Log file log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file-rotation", (1 * time.Hour).String(), "Log file rotation period, as a duration.")

	// Bind flags to viper
	config.BindFlags(rootCmd.PersistentFlags())

	primeCmdFlags(primeCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd.Execute()
}
