package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hackstyle/hlint/internal/lints"
	tt "github.com/hackstyle/hlint/internal/types"
	"github.com/hackstyle/hlint/lint"
)

// initCmd: hlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".hlint.yaml"
	}

	enabled := true
	disabled := false
	config := lint.Config{
		Name:    "hlint",
		Dialect: "modern",
		Rules: map[string]tt.ConfigRule{
			"bare-except":         {Enabled: &enabled},
			"broad-assert-raises": {Enabled: &enabled},
			"assert-is-none": {
				Enabled: &disabled,
				Methods: lints.DefaultAssertMethods,
				Args:    lints.DefaultNoneArgCount,
			},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}
