package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackstyle/hlint/lint"
)

// rulesCmd: hlint rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered lint rules",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		rules := engine.Rules()
		sort.Slice(rules, func(i, j int) bool { return rules[i].Code() < rules[j].Code() })

		for _, rule := range rules {
			state := "on by default"
			if !rule.DefaultEnabled() {
				state = "off by default"
			}
			fmt.Printf("%s  %-20s %s\n", rule.Code(), rule.Name(), state)
		}
	},
}
