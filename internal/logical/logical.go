// Package logical reassembles logical lines from physical source lines:
// one syntactically complete statement per line, with backslash
// continuations and open-bracket spans joined, trailing comments stripped,
// and suppression markers extracted.
package logical

import (
	"strings"

	"github.com/hackstyle/hlint/internal/noqa"
)

// Line is one reassembled logical line.
type Line struct {
	Text string // statement text, indentation and comments removed
	Row  int    // 1-based physical line where the statement starts

	// Marker is the combined suppression marker of the physical lines the
	// statement spans; HasMarker tells whether any was present.
	Marker    noqa.Marker
	HasMarker bool
}

// Suppressed reports whether every rule should skip this line.
func (l Line) Suppressed() bool {
	return l.HasMarker && l.Marker.All
}

// stringState tracks an open string literal across physical lines.
type stringState struct {
	quote  byte // 0 when outside any string
	triple bool
}

func (s stringState) open() bool { return s.quote != 0 }

// Split breaks source text into logical lines.
func Split(source string) []Line {
	physical := strings.Split(source, "\n")

	var out []Line
	var parts []string
	var str stringState
	var marker noqa.Marker
	hasMarker := false
	depth := 0
	startRow := 0

	flush := func() {
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text != "" {
			for _, stmt := range splitStatements(text) {
				out = append(out, Line{Text: stmt, Row: startRow, Marker: marker, HasMarker: hasMarker})
			}
		}
		parts = parts[:0]
		marker = noqa.Marker{}
		hasMarker = false
		startRow = 0
	}

	for i, phys := range physical {
		row := i + 1
		code, comment := stripComment(phys, &str, &depth)

		if comment != "" {
			if m, ok := noqa.Parse(comment); ok {
				if hasMarker {
					marker = marker.Merge(m)
				} else {
					marker = m
				}
				hasMarker = true
			}
		}

		trimmed := strings.TrimRight(code, " \t")
		continued := false
		if !str.open() && strings.HasSuffix(trimmed, "\\") {
			trimmed = trimmed[:len(trimmed)-1]
			continued = true
		}

		segment := strings.TrimSpace(trimmed)
		if segment != "" || str.open() {
			if startRow == 0 {
				startRow = row
			}
			if segment != "" {
				parts = append(parts, segment)
			}
		}

		if !continued && !str.open() && depth == 0 {
			flush()
		}
	}
	flush()
	return out
}

// stripComment scans one physical line, updating the open-string state and
// bracket depth, and returns the code portion and any trailing comment.
func stripComment(line string, str *stringState, depth *int) (code, comment string) {
	i := 0
	for i < len(line) {
		c := line[i]
		if str.open() {
			if c == '\\' {
				i += 2
				continue
			}
			if c == str.quote {
				if !str.triple {
					*str = stringState{}
					i++
					continue
				}
				if strings.HasPrefix(line[i:], strings.Repeat(string(c), 3)) {
					*str = stringState{}
					i += 3
					continue
				}
			}
			i++
			continue
		}
		switch c {
		case '#':
			return line[:i], line[i:]
		case '\'', '"':
			str.quote = c
			str.triple = strings.HasPrefix(line[i:], strings.Repeat(string(c), 3))
			if str.triple {
				i += 3
			} else {
				i++
			}
		case '(', '[', '{':
			*depth++
			i++
		case ')', ']', '}':
			if *depth > 0 {
				*depth--
			}
			i++
		case '\\':
			if i == len(line)-1 {
				return line, "" // continuation backslash, handled by caller
			}
			i += 2
		default:
			i++
		}
	}
	return line, ""
}

// splitStatements splits compound lines like "a = 1; b = 2" on top-level
// semicolons. Most lines come back unchanged.
func splitStatements(text string) []string {
	if !strings.Contains(text, ";") {
		return []string{text}
	}
	var stmts []string
	var str stringState
	depth := 0
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if str.open() {
			if c == '\\' {
				i += 2
				continue
			}
			if c == str.quote {
				if !str.triple {
					str = stringState{}
				} else if strings.HasPrefix(text[i:], strings.Repeat(string(c), 3)) {
					str = stringState{}
					i += 3
					continue
				}
			}
			i++
			continue
		}
		switch c {
		case '\'', '"':
			str.quote = c
			str.triple = strings.HasPrefix(text[i:], strings.Repeat(string(c), 3))
			if str.triple {
				i += 3
				continue
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				if s := strings.TrimSpace(text[start:i]); s != "" {
					stmts = append(stmts, s)
				}
				start = i + 1
			}
		}
		i++
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
