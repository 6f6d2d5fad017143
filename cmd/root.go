package cmd

import (
	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/logging"
	"github.com/atlassify/atlassify/internal/version"
)

var debugFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "atlassify",
	Short: "Your Atlassian notifications, one tray away.",
	Long:  `Your Atlassian notifications, one tray away.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if debugFlag {
			level = "debug"
		}
		logger, err := logging.Init(logging.Config{Enabled: true, Level: level})
		if err != nil {
			// Logging is best effort; the CLI still works without it.
			return nil
		}
		logging.SetGlobal(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}
