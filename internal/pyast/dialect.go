package pyast

import "fmt"

// Dialect selects how the source language represents its None singleton in
// the parsed tree. Legacy sources parse None (and True/False) as ordinary
// Name nodes; modern sources give them dedicated constant literal nodes.
// The dialect is resolved once per engine, never per node.
type Dialect int

const (
	DialectModern Dialect = iota
	DialectLegacy
)

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	default:
		return "modern"
	}
}

// ParseDialect maps a configuration string to a Dialect.
// The empty string selects the modern dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "modern":
		return DialectModern, nil
	case "legacy":
		return DialectLegacy, nil
	default:
		return DialectModern, fmt.Errorf("unknown dialect %q", s)
	}
}

// IsNoneLiteral reports whether node denotes the None singleton under the
// given dialect. In the legacy dialect None is an ordinary Name node whose
// identifier must be exactly "None"; in the modern dialect it is a constant
// literal node. Any other node kind is never a None literal.
func IsNoneLiteral(node Expr, d Dialect) bool {
	switch n := node.(type) {
	case *Name:
		return d == DialectLegacy && n.ID == "None"
	case *Literal:
		return d == DialectModern && n.Kind == LitNone
	default:
		return false
	}
}
