// Package pyast parses one logical line of Python-style source into a small
// closed expression tree. The tree only distinguishes the node shapes the
// lint rules care about: calls, attribute accesses, names, literals and
// subscripts. Every other construct (operators, displays, comprehensions,
// assignments) is folded into an Other node whose operands remain walkable,
// so nested calls are never lost.
package pyast

// Expr is the closed interface over all expression node kinds.
type Expr interface {
	// Pos returns the byte offset of the node within the logical line.
	Pos() int
	exprNode()
}

// LitKind classifies constant literal nodes.
type LitKind int

const (
	LitNone LitKind = iota
	LitTrue
	LitFalse
	LitString
	LitNumber
	LitEllipsis
)

// Name is a bare identifier.
type Name struct {
	Off int
	ID  string
}

// Literal is a constant: a string, a number, or (in the modern dialect)
// one of the named singletons.
type Literal struct {
	Off   int
	Kind  LitKind
	Value string // raw source text
}

// Attribute is a dotted access, value.Attr.
type Attribute struct {
	Off     int
	Value   Expr
	Attr    string
	AttrOff int // offset of the attribute name itself
}

// Call is a function or method invocation. Args holds the positional
// arguments in source order; keyword arguments are kept separately because
// the rules only ever inspect positional ones.
type Call struct {
	Off      int
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// Keyword is a name=value argument inside a call.
type Keyword struct {
	Name  string
	Value Expr
}

// Subscript is an indexing expression, value[index].
type Subscript struct {
	Off   int
	Value Expr
	Index Expr
}

// Other is the catch-all for every construct the rules never match on
// directly: operators, tuple/list/dict/set displays, lambdas, conditionals,
// assignments. Op names the construct; Operands holds the child expressions
// so traversal stays exhaustive.
type Other struct {
	Off      int
	Op       string
	Operands []Expr
}

func (n *Name) Pos() int      { return n.Off }
func (l *Literal) Pos() int   { return l.Off }
func (a *Attribute) Pos() int { return a.Off }
func (c *Call) Pos() int      { return c.Off }
func (s *Subscript) Pos() int { return s.Off }
func (o *Other) Pos() int     { return o.Off }

func (*Name) exprNode()      {}
func (*Literal) exprNode()   {}
func (*Attribute) exprNode() {}
func (*Call) exprNode()      {}
func (*Subscript) exprNode() {}
func (*Other) exprNode()     {}
