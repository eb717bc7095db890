package internal

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/hackstyle/hlint/internal/logical"
	"github.com/hackstyle/hlint/internal/pyast"
	tt "github.com/hackstyle/hlint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	dialect      pyast.Dialect
	rules        map[string]LintRule
	ignoredRules map[string]bool

	watcher    watcherHandle
	isWatching bool
}

// NewEngine creates a new lint engine with the given dialect and rule
// configuration applied over the defaults.
func NewEngine(dialect pyast.Dialect, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{dialect: dialect}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func(pyast.Dialect) LintRule

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = map[string]ruleConstructor{
	"bare-except":         NewBareExceptRule,
	"broad-assert-raises": NewBroadAssertRaisesRule,
	"assert-is-none":      NewAssertIsNoneRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	for key, cstr := range allRuleConstructors {
		rule := cstr(e.dialect)
		if rule.DefaultEnabled() {
			e.rules[key] = rule
		}
	}

	for key, cfg := range rules {
		cstr, ok := allRuleConstructors[key]
		if !ok {
			return fmt.Errorf("unknown rule %q in configuration", key)
		}
		rule, registered := e.rules[key]
		if !registered {
			rule = cstr(e.dialect)
		}
		if cfg.Enabled != nil && !*cfg.Enabled {
			delete(e.rules, key)
			continue
		}
		if cfg.Enabled != nil && *cfg.Enabled {
			e.rules[key] = rule
		}
		if r, ok := rule.(*AssertIsNoneRule); ok {
			if len(cfg.Methods) > 0 {
				r.Methods = cfg.Methods
			}
			if cfg.Args > 0 {
				r.NumArgs = cfg.Args
			}
		}
	}
	return nil
}

// Rules returns the currently registered rules, including default state,
// for display purposes.
func (e *Engine) Rules() []LintRule {
	out := make([]LintRule, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, r)
	}
	return out
}

// IgnoreRule excludes a rule by name for the rest of the run.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Run applies all registered rules to the given file and returns the
// findings. A parse failure on a line the tokenizer accepted is a hard
// error and aborts the file.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	issues, err := e.RunSource(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	for i := range issues {
		issues[i].Filename = filename
	}
	return issues, nil
}

// RunSource applies all registered rules to the given source and returns
// the findings. Rules are pure functions of (line, suppression flag), so
// they run concurrently without coordination.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	lines := logical.Split(string(source))

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	var errs []error
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			var found []tt.Issue
			for _, line := range lines {
				issues, err := r.Check(line.Text, line.Suppressed())
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return
				}
				for _, issue := range issues {
					if line.HasMarker && line.Marker.Suppresses(issue.Code) {
						continue
					}
					issue.Line = line.Row
					found = append(found, issue)
				}
			}
			mu.Lock()
			allIssues = append(allIssues, found...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(allIssues, func(i, j int) bool {
		a, b := allIssues[i], allIssues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Code < b.Code
	})
	return allIssues, nil
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
