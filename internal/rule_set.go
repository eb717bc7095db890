package internal

import (
	"github.com/hackstyle/hlint/internal/lints"
	"github.com/hackstyle/hlint/internal/pyast"
	tt "github.com/hackstyle/hlint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the rule on one logical line and returns its findings.
	// The suppressed flag short-circuits every rule to zero findings.
	Check(line string, suppressed bool) ([]tt.Issue, error)

	// Name returns the registry name of the rule.
	Name() string

	// Code returns the stable code prefix carried in the rule's messages.
	Code() string

	// DefaultEnabled reports whether the rule runs without explicit opt-in.
	DefaultEnabled() bool
}

type BareExceptRule struct{}

func NewBareExceptRule(_ pyast.Dialect) LintRule { return &BareExceptRule{} }

func (r *BareExceptRule) Check(line string, suppressed bool) ([]tt.Issue, error) {
	return lints.CheckBareExcept(line, suppressed), nil
}

func (r *BareExceptRule) Name() string         { return "bare-except" }
func (r *BareExceptRule) Code() string         { return "H201" }
func (r *BareExceptRule) DefaultEnabled() bool { return true }

type BroadAssertRaisesRule struct{}

func NewBroadAssertRaisesRule(_ pyast.Dialect) LintRule { return &BroadAssertRaisesRule{} }

func (r *BroadAssertRaisesRule) Check(line string, suppressed bool) ([]tt.Issue, error) {
	return lints.CheckBroadAssertRaises(line, suppressed), nil
}

func (r *BroadAssertRaisesRule) Name() string         { return "broad-assert-raises" }
func (r *BroadAssertRaisesRule) Code() string         { return "H202" }
func (r *BroadAssertRaisesRule) DefaultEnabled() bool { return true }

// AssertIsNoneRule is registered disabled by default and has to be opted
// into by configuration. It scans every target method name present in the
// line, so one line can yield up to one finding per method name.
type AssertIsNoneRule struct {
	Dialect pyast.Dialect
	Methods []string
	NumArgs int
}

func NewAssertIsNoneRule(d pyast.Dialect) LintRule {
	return &AssertIsNoneRule{
		Dialect: d,
		Methods: lints.DefaultAssertMethods,
		NumArgs: lints.DefaultNoneArgCount,
	}
}

func (r *AssertIsNoneRule) Check(line string, suppressed bool) ([]tt.Issue, error) {
	return lints.CheckAssertIsNone(line, suppressed, r.Dialect, r.Methods, r.NumArgs)
}

func (r *AssertIsNoneRule) Name() string         { return "assert-is-none" }
func (r *AssertIsNoneRule) Code() string         { return "H203" }
func (r *AssertIsNoneRule) DefaultEnabled() bool { return false }
