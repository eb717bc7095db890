package lints

import "github.com/hackstyle/hlint/internal/pyast"

// NoneArgScanner walks an expression tree and records whether any call to a
// named function or method passes the None literal among its first NumArgs
// positional arguments.
type NoneArgScanner struct {
	FuncName string
	NumArgs  int
	Dialect  pyast.Dialect
}

// Scan reports whether a matching call with a leading None argument exists
// anywhere in the tree. The walk always covers every node, including calls
// nested inside arguments of an already-matched call; the result is an OR
// across all matching calls.
func (s NoneArgScanner) Scan(tree pyast.Expr) bool {
	found := false
	pyast.Inspect(tree, func(node pyast.Expr) bool {
		call, ok := node.(*pyast.Call)
		if !ok {
			return true
		}
		var name string
		switch fn := call.Func.(type) {
		case *pyast.Attribute:
			name = fn.Attr
		case *pyast.Name:
			name = fn.ID
		default:
			// subscripted or computed callee, not a candidate
			return true
		}
		if name != s.FuncName {
			return true
		}
		args := call.Args
		if len(args) > s.NumArgs {
			args = args[:s.NumArgs]
		}
		for _, arg := range args {
			if pyast.IsNoneLiteral(arg, s.Dialect) {
				found = true
			}
		}
		return true
	})
	return found
}
