package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hackstyle/hlint/internal"
	"github.com/hackstyle/hlint/internal/pyast"
	tt "github.com/hackstyle/hlint/internal/types"
)

// LintEngine is the surface the CLI and embedders program against.
type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
}

// Config represents the overall configuration: a name, the source dialect,
// and per-rule switches.
type Config struct {
	Name    string                   `yaml:"name"`
	Dialect string                   `yaml:"dialect,omitempty"`
	Rules   map[string]tt.ConfigRule `yaml:"rules"`
}

// New builds an engine from the configuration file at configurationPath.
// A missing or empty path yields the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	dialect, err := pyast.ParseDialect(config.Dialect)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(dialect, config.Rules)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration: %w", err)
	}
	return config, nil
}

// ProcessFiles lints each of the given paths and returns the combined
// findings.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath lints one file, or every matching file under one directory
// with a bounded worker pool and a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err == nil && !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if len(files) == 0 {
		return nil, nil
	}

	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errorChan <- err
			} else {
				resultChan <- fileIssues
			}
			bar.Add(1)
		}(filePath)
	}
	wg.Wait()
	close(resultChan)
	close(errorChan)
	fmt.Println()

	if err := <-errorChan; err != nil {
		return nil, err
	}
	var issues []tt.Issue
	for result := range resultChan {
		issues = append(issues, result...)
	}
	return issues, nil
}

// ProcessFile lints a single file with the engine.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints in-memory source with the engine.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".py": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
