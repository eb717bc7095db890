package pyast

// Inspect traverses the tree rooted at node in depth-first order, calling
// fn for each expression. If fn returns false the children of that node are
// skipped. A nil node is ignored, so callers can pass optional children
// without guarding.
func Inspect(node Expr, fn func(Expr) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Name, *Literal:
		// leaves
	case *Attribute:
		Inspect(n.Value, fn)
	case *Call:
		Inspect(n.Func, fn)
		for _, arg := range n.Args {
			Inspect(arg, fn)
		}
		for _, kw := range n.Keywords {
			Inspect(kw.Value, fn)
		}
	case *Subscript:
		Inspect(n.Value, fn)
		Inspect(n.Index, fn)
	case *Other:
		for _, op := range n.Operands {
			Inspect(op, fn)
		}
	}
}
