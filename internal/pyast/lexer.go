package pyast

import "strings"

// lexer scans one logical line into a token slice in a single pass.
type lexer struct {
	input  string
	pos    int
	tokens []token
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// run tokenizes the entire input. A '#' outside a string ends the scan:
// the host strips trailing comments before handing lines over, but a
// leftover marker must not reach the parser as garbage tokens.
func (l *lexer) run() ([]token, error) {
	for l.pos < len(l.input) {
		start := l.pos
		c := l.input[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '\\':
			// stray continuation backslash left by line joining
			l.pos++
		case c == '#':
			l.pos = len(l.input)
		case isIdentStart(c):
			if err := l.lexIdentOrString(start); err != nil {
				return nil, err
			}
		case isDigit(c) || (c == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
			l.lexNumber(start)
		case c == '\'' || c == '"':
			if err := l.lexString(start, start); err != nil {
				return nil, err
			}
		case c == '(':
			l.add(tokLParen, "(", start)
			l.pos++
		case c == ')':
			l.add(tokRParen, ")", start)
			l.pos++
		case c == '[':
			l.add(tokLBracket, "[", start)
			l.pos++
		case c == ']':
			l.add(tokRBracket, "]", start)
			l.pos++
		case c == '{':
			l.add(tokLBrace, "{", start)
			l.pos++
		case c == '}':
			l.add(tokRBrace, "}", start)
			l.pos++
		case c == ',':
			l.add(tokComma, ",", start)
			l.pos++
		case c == ':':
			if strings.HasPrefix(l.input[l.pos:], ":=") {
				l.add(tokOp, ":=", start)
				l.pos += 2
			} else {
				l.add(tokColon, ":", start)
				l.pos++
			}
		case c == '.':
			if strings.HasPrefix(l.input[l.pos:], "...") {
				l.add(tokIdent, "...", start)
				l.pos += 3
			} else {
				l.add(tokDot, ".", start)
				l.pos++
			}
		default:
			op := l.matchOperator()
			if op == "" {
				return nil, &ParseError{Offset: start, Msg: "unexpected character " + string(c)}
			}
			l.add(tokOp, op, start)
			l.pos += len(op)
		}
	}
	l.add(tokEOF, "", l.pos)
	return l.tokens, nil
}

func (l *lexer) add(kind tokenKind, text string, off int) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, off: off})
}

func (l *lexer) matchOperator() string {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}

// lexIdentOrString scans an identifier, folding string prefixes like r'...'
// or b"..." into the string token that follows them.
func (l *lexer) lexIdentOrString(start int) error {
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]
	if len(word) <= 2 && l.pos < len(l.input) &&
		(l.input[l.pos] == '\'' || l.input[l.pos] == '"') && isStringPrefix(word) {
		return l.lexString(l.pos, start)
	}
	l.add(tokIdent, word, start)
	return nil
}

func isStringPrefix(word string) bool {
	switch strings.ToLower(word) {
	case "r", "b", "u", "f", "rb", "br", "rf", "fr":
		return true
	}
	return false
}

// lexString scans a quoted literal starting at quote position pos, where
// tokStart is the start of the token including any prefix letters.
func (l *lexer) lexString(quotePos, tokStart int) error {
	quote := l.input[quotePos]
	triple := strings.HasPrefix(l.input[quotePos:], strings.Repeat(string(quote), 3))
	l.pos = quotePos + 1
	if triple {
		l.pos = quotePos + 3
	}
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && !triple {
			l.pos += 2
			continue
		}
		if c == quote {
			if !triple {
				l.pos++
				l.add(tokString, l.input[tokStart:l.pos], tokStart)
				return nil
			}
			if strings.HasPrefix(l.input[l.pos:], strings.Repeat(string(quote), 3)) {
				l.pos += 3
				l.add(tokString, l.input[tokStart:l.pos], tokStart)
				return nil
			}
		}
		l.pos++
	}
	return &ParseError{Offset: tokStart, Msg: "unterminated string literal"}
}

// lexNumber scans an integer or float, including hex/octal/binary forms and
// exponents. The parser never interprets the value, so scanning is loose.
func (l *lexer) lexNumber(start int) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isDigit(c) || isIdentPart(c) || c == '.' {
			l.pos++
			continue
		}
		// exponent sign: 1e-5, 2E+10
		if (c == '+' || c == '-') && l.pos > start {
			prev := l.input[l.pos-1]
			if prev == 'e' || prev == 'E' {
				l.pos++
				continue
			}
		}
		break
	}
	l.add(tokNumber, l.input[start:l.pos], start)
}
