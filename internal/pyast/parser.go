package pyast

import "fmt"

// ParseError reports a logical line that could not be parsed. The host's
// tokenizer already accepted the line, so reaching this error means the
// logical-line reconstruction and this parser disagree; callers are
// expected to surface it rather than swallow it.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// ParseLine parses one logical line into an expression tree. Statement
// dressing around the expression (assignment targets, return/assert/del
// prefixes) is folded into Other nodes so that every call in the line stays
// reachable by Inspect.
func ParseLine(line string, d Dialect) (Expr, error) {
	tokens, err := newLexer(line).run()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, dialect: d}
	expr, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return expr, nil
}

type parser struct {
	tokens  []token
	pos     int
	dialect Dialect
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptIdent(word string) bool {
	if t := p.peek(); t.kind == tokIdent && t.text == word {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return t, p.errorf("expected %s, found %q", what, t.text)
	}
	p.pos++
	return t, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.peek().off, Msg: fmt.Sprintf(format, args...)}
}

// statementKeywords are prefixes that may survive logical-line
// reconstruction in front of the expression of interest.
var statementKeywords = map[string]bool{
	"return": true,
	"assert": true,
	"del":    true,
	"raise":  true,
	"yield":  true,
	"await":  true,
	"pass":   true,
}

func (p *parser) parseStatement() (Expr, error) {
	t := p.peek()
	if t.kind == tokIdent && statementKeywords[t.text] {
		p.pos++
		if t.text == "pass" || p.peek().kind == tokEOF {
			return &Other{Off: t.off, Op: t.text}, nil
		}
		body, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &Other{Off: t.off, Op: t.text, Operands: []Expr{body}}, nil
	}

	left, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if !p.isAssignOp() {
		return left, nil
	}
	operands := []Expr{left}
	for p.isAssignOp() {
		p.next()
		right, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	return &Other{Off: left.Pos(), Op: "assign", Operands: operands}, nil
}

func (p *parser) isAssignOp() bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	if t.text == "=" || t.text == ":=" {
		return true
	}
	// augmented assignment: +=, //=, ...
	return len(t.text) >= 2 && t.text[len(t.text)-1] == '=' &&
		t.text != "==" && t.text != "!=" && t.text != "<=" && t.text != ">="
}

// parseExprList parses one or more comma-separated expressions; more than
// one makes an unparenthesized tuple.
func (p *parser) parseExprList() (Expr, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokComma {
		return first, nil
	}
	elems := []Expr{first}
	for p.accept(tokComma) {
		if p.atExprEnd() {
			break // trailing comma
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return &Other{Off: first.Pos(), Op: "tuple", Operands: elems}, nil
}

func (p *parser) atExprEnd() bool {
	switch p.peek().kind {
	case tokEOF, tokRParen, tokRBracket, tokRBrace, tokColon:
		return true
	}
	return p.isAssignOp()
}

// parseExpr parses a full expression including conditional and named
// (walrus) expressions.
func (p *parser) parseExpr() (Expr, error) {
	body, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokOp && t.text == ":=" {
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Other{Off: body.Pos(), Op: ":=", Operands: []Expr{body, value}}, nil
	}
	if t := p.peek(); t.kind == tokIdent && t.text == "if" {
		p.pos++
		cond, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if !p.acceptIdent("else") {
			return nil, p.errorf("expected 'else' in conditional expression")
		}
		orelse, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Other{Off: body.Pos(), Op: "ifexp", Operands: []Expr{body, cond, orelse}}, nil
	}
	return body, nil
}

// binaryPrec returns the precedence of the operator starting at the current
// token, or 0 when it is not a binary operator. Word operators (or, and,
// in, is, not in, is not) arrive as identifiers.
func (p *parser) binaryPrec() (string, int) {
	t := p.peek()
	if t.kind == tokIdent {
		switch t.text {
		case "or":
			return "or", 2
		case "and":
			return "and", 3
		case "in", "is":
			return t.text, 5
		case "not":
			// "not in" as a whole; bare "not" is never infix
			if n := p.tokens[p.pos+1]; n.kind == tokIdent && n.text == "in" {
				return "not in", 5
			}
			return "", 0
		}
		return "", 0
	}
	if t.kind != tokOp {
		return "", 0
	}
	switch t.text {
	case "==", "!=", "<", ">", "<=", ">=", "<>":
		return t.text, 5
	case "|":
		return t.text, 6
	case "^":
		return t.text, 7
	case "&":
		return t.text, 8
	case "<<", ">>":
		return t.text, 9
	case "+", "-":
		return t.text, 10
	case "*", "/", "//", "%", "@":
		return t.text, 11
	case "**":
		return t.text, 13
	}
	return "", 0
}

func (p *parser) parseBinary(minPrec int) (Expr, error) {
	// "not" binds looser than comparisons but tighter than and/or
	if t := p.peek(); t.kind == tokIdent && t.text == "not" && minPrec <= 4 {
		if n := p.tokens[p.pos+1]; !(n.kind == tokIdent && n.text == "in") {
			p.pos++
			operand, err := p.parseBinary(4)
			if err != nil {
				return nil, err
			}
			return &Other{Off: t.off, Op: "not", Operands: []Expr{operand}}, nil
		}
	}

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec := p.binaryPrec()
		if op == "" || prec < minPrec {
			return left, nil
		}
		if op == "not in" {
			p.pos += 2
		} else if op == "is" {
			p.pos++
			if p.acceptIdent("not") {
				op = "is not"
			}
		} else {
			p.pos++
		}
		nextMin := prec + 1
		if op == "**" { // right associative
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left = &Other{Off: left.Pos(), Op: op, Operands: []Expr{left, right}}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+" || t.text == "~" || t.text == "*" || t.text == "**") {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := t.text
		if op == "*" || op == "**" {
			op = "starred"
		}
		return &Other{Off: t.off, Op: op, Operands: []Expr{operand}}, nil
	}
	if t.kind == tokIdent {
		switch t.text {
		case "lambda":
			return p.parseLambda()
		case "await":
			p.pos++
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &Other{Off: t.off, Op: "await", Operands: []Expr{operand}}, nil
		}
	}
	return p.parsePostfix()
}

func (p *parser) parseLambda() (Expr, error) {
	t := p.next() // "lambda"
	// parameters are names with optional defaults, up to the colon
	var operands []Expr
	for p.peek().kind != tokColon {
		if p.peek().kind == tokEOF {
			return nil, p.errorf("expected ':' in lambda")
		}
		if p.peek().kind == tokComma || (p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "**")) {
			p.pos++
			continue
		}
		param, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokOp && p.peek().text == "=" {
			p.pos++
			def, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			operands = append(operands, def)
			continue
		}
		operands = append(operands, param)
	}
	p.pos++ // ':'
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	operands = append(operands, body)
	return &Other{Off: t.off, Op: "lambda", Operands: operands}, nil
}

// parsePostfix parses an atom followed by any chain of calls, attribute
// accesses and subscripts.
func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peek().kind == tokLParen:
			expr, err = p.parseCall(expr)
		case p.peek().kind == tokDot:
			p.pos++
			name, nerr := p.expect(tokIdent, "attribute name")
			if nerr != nil {
				return nil, nerr
			}
			expr = &Attribute{Off: expr.Pos(), Value: expr, Attr: name.text, AttrOff: name.off}
		case p.peek().kind == tokLBracket:
			expr, err = p.parseSubscript(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseCall(fn Expr) (Expr, error) {
	p.pos++ // '('
	call := &Call{Off: fn.Pos(), Func: fn}
	for p.peek().kind != tokRParen {
		if p.peek().kind == tokEOF {
			return nil, p.errorf("unclosed call")
		}
		// keyword argument: name=value (but not name==value)
		if t := p.peek(); t.kind == tokIdent && p.tokens[p.pos+1].kind == tokOp && p.tokens[p.pos+1].text == "=" {
			p.pos += 2
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, Keyword{Name: t.text, Value: value})
		} else {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			// generator argument: f(x for x in xs)
			if p.peek().kind == tokIdent && p.peek().text == "for" {
				arg, err = p.parseComprehension(arg, "genexp")
				if err != nil {
					return nil, err
				}
			}
			call.Args = append(call.Args, arg)
		}
		if !p.accept(tokComma) {
			break
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *parser) parseSubscript(value Expr) (Expr, error) {
	open := p.next() // '['
	var parts []Expr
	sliced := false
	for p.peek().kind != tokRBracket {
		if p.peek().kind == tokEOF {
			return nil, p.errorf("unclosed subscript")
		}
		if p.accept(tokColon) {
			sliced = true
			continue
		}
		if p.accept(tokComma) {
			sliced = true
			continue
		}
		part, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	p.pos++ // ']'
	var index Expr
	switch {
	case len(parts) == 1 && !sliced:
		index = parts[0]
	default:
		index = &Other{Off: open.off, Op: "slice", Operands: parts}
	}
	return &Subscript{Off: value.Pos(), Value: value, Index: index}, nil
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokIdent:
		p.pos++
		switch t.text {
		case "None", "True", "False":
			if p.dialect == DialectModern {
				kind := LitNone
				switch t.text {
				case "True":
					kind = LitTrue
				case "False":
					kind = LitFalse
				}
				return &Literal{Off: t.off, Kind: kind, Value: t.text}, nil
			}
			return &Name{Off: t.off, ID: t.text}, nil
		case "...":
			return &Literal{Off: t.off, Kind: LitEllipsis, Value: t.text}, nil
		}
		return &Name{Off: t.off, ID: t.text}, nil
	case tokNumber:
		p.pos++
		return &Literal{Off: t.off, Kind: LitNumber, Value: t.text}, nil
	case tokString:
		p.pos++
		text := t.text
		// implicit concatenation of adjacent string literals
		for p.peek().kind == tokString {
			text += p.next().text
		}
		return &Literal{Off: t.off, Kind: LitString, Value: text}, nil
	case tokLParen:
		return p.parseParenthesized()
	case tokLBracket:
		return p.parseListDisplay()
	case tokLBrace:
		return p.parseBraceDisplay()
	default:
		return nil, p.errorf("unexpected %q", t.text)
	}
}

func (p *parser) parseParenthesized() (Expr, error) {
	open := p.next() // '('
	if p.accept(tokRParen) {
		return &Other{Off: open.off, Op: "tuple"}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokIdent && p.peek().text == "for" {
		gen, err := p.parseComprehension(first, "genexp")
		if err != nil {
			return nil, err
		}
		_, err = p.expect(tokRParen, "')'")
		return gen, err
	}
	if p.peek().kind == tokComma {
		elems := []Expr{first}
		for p.accept(tokComma) {
			if p.peek().kind == tokRParen {
				break
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return &Other{Off: open.off, Op: "tuple", Operands: elems}, nil
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	// plain grouping: the inner node is the value
	return first, nil
}

func (p *parser) parseListDisplay() (Expr, error) {
	open := p.next() // '['
	if p.accept(tokRBracket) {
		return &Other{Off: open.off, Op: "list"}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokIdent && p.peek().text == "for" {
		comp, err := p.parseComprehension(first, "listcomp")
		if err != nil {
			return nil, err
		}
		_, err = p.expect(tokRBracket, "']'")
		return comp, err
	}
	elems := []Expr{first}
	for p.accept(tokComma) {
		if p.peek().kind == tokRBracket {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	return &Other{Off: open.off, Op: "list", Operands: elems}, nil
}

// parseBraceDisplay parses dict and set displays, including comprehensions.
func (p *parser) parseBraceDisplay() (Expr, error) {
	open := p.next() // '{'
	if p.accept(tokRBrace) {
		return &Other{Off: open.off, Op: "dict"}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.accept(tokColon) {
		// dict display: key: value pairs
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokIdent && p.peek().text == "for" {
			comp, err := p.parseComprehension(&Other{Off: first.Pos(), Op: "pair", Operands: []Expr{first, value}}, "dictcomp")
			if err != nil {
				return nil, err
			}
			_, err = p.expect(tokRBrace, "'}'")
			return comp, err
		}
		operands := []Expr{first, value}
		for p.accept(tokComma) {
			if p.peek().kind == tokRBrace {
				break
			}
			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokColon, "':'"); err != nil {
				return nil, err
			}
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			operands = append(operands, k, v)
		}
		if _, err := p.expect(tokRBrace, "'}'"); err != nil {
			return nil, err
		}
		return &Other{Off: open.off, Op: "dict", Operands: operands}, nil
	}
	if p.peek().kind == tokIdent && p.peek().text == "for" {
		comp, err := p.parseComprehension(first, "setcomp")
		if err != nil {
			return nil, err
		}
		_, err = p.expect(tokRBrace, "'}'")
		return comp, err
	}
	elems := []Expr{first}
	for p.accept(tokComma) {
		if p.peek().kind == tokRBrace {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &Other{Off: open.off, Op: "set", Operands: elems}, nil
}

// parseComprehension parses the "for target in iter [if cond]..." clauses
// that follow the element expression of a comprehension.
func (p *parser) parseComprehension(elem Expr, op string) (Expr, error) {
	operands := []Expr{elem}
	for p.acceptIdent("for") {
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		if !p.acceptIdent("in") {
			return nil, p.errorf("expected 'in' in comprehension")
		}
		iter, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		operands = append(operands, target, iter)
		for p.acceptIdent("if") {
			cond, err := p.parseBinary(1)
			if err != nil {
				return nil, err
			}
			operands = append(operands, cond)
		}
	}
	return &Other{Off: elem.Pos(), Op: op, Operands: operands}, nil
}

// parseTargetList parses comprehension targets: names, attributes,
// subscripts and tuples of those. It must stop before the 'in' keyword, so
// ordinary binary-expression parsing cannot be used here.
func (p *parser) parseTargetList() (Expr, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokComma {
		return first, nil
	}
	elems := []Expr{first}
	for p.accept(tokComma) {
		if t := p.peek(); t.kind == tokIdent && t.text == "in" {
			break
		}
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return &Other{Off: first.Pos(), Op: "tuple", Operands: elems}, nil
}
