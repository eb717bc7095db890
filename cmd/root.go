package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "hlint [paths...]",
	Short:            "hlint - exception-hygiene checks for Python-style test code",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'hlint' is entered
			_ = cmd.Help()
			return
		}
		// Format: hlint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".hlint.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Set a timeout for the linter")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(rulesCmd)
}
