package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackstyle/hlint/internal"
	tt "github.com/hackstyle/hlint/internal/types"
	"github.com/hackstyle/hlint/lint"
)

var (
	ignoreRules    string
	lintJsonOutput bool
	outPath        string
	watchMode      bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if ignoreRules != "" {
			rules := strings.Split(ignoreRules, ",")
			for _, rule := range rules {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if watchMode {
			runWatch(engine, args)
			return
		}

		runNormalLintProcess(ctx, logger, engine, args, lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-lint files as they change")
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printIssues(logger, issues, isJson, jsonOutput)

	if len(issues) > 0 {
		os.Exit(1)
	}
}

func runWatch(engine *internal.Engine, paths []string) {
	err := engine.StartWatching(paths, func(path string, issues []tt.Issue, err error) {
		if err != nil {
			logger.Error("Error linting file", zap.String("file", path), zap.Error(err))
			return
		}
		printIssues(logger, issues, false, "")
	})
	if err != nil {
		logger.Fatal("Failed to start watch mode", zap.Error(err))
	}
	defer engine.StopWatching()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if isJson {
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			logger.Error("Error marshalling issues", zap.Error(err))
			os.Exit(1)
		}
		if jsonOutput == "" {
			fmt.Println(string(d))
			return
		}
		if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
			logger.Error("Error writing output file", zap.String("path", jsonOutput), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	for _, filename := range sortedFiles {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		output := internal.FormatIssuesWithArrows(issuesByFile[filename], sourceCode)
		fmt.Println(output)
	}
}
