// Package noqa recognizes inline suppression markers. A trailing "# noqa"
// comment silences every rule on that line; "# noqa: H201,H203" silences
// only the listed codes.
package noqa

import (
	"regexp"
	"strings"
)

var reMarker = regexp.MustCompile(`(?i)#\s*noqa\b\s*(?::\s*([A-Z0-9,\s]+))?`)

// Marker is a parsed suppression marker.
type Marker struct {
	// All is set for a bare marker with no code list.
	All bool

	// Codes holds the uppercased rule codes of a scoped marker.
	Codes map[string]struct{}
}

// Parse scans a comment for a suppression marker. The second return value
// is false when the comment carries no marker at all.
func Parse(comment string) (Marker, bool) {
	m := reMarker.FindStringSubmatch(comment)
	if m == nil {
		return Marker{}, false
	}
	codes := parseCodeList(m[1])
	if len(codes) == 0 {
		return Marker{All: true}, true
	}
	return Marker{Codes: codes}, true
}

func parseCodeList(list string) map[string]struct{} {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	codes := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		codes[strings.ToUpper(f)] = struct{}{}
	}
	return codes
}

// Suppresses reports whether the marker silences the given rule code.
func (m Marker) Suppresses(code string) bool {
	if m.All {
		return true
	}
	_, ok := m.Codes[strings.ToUpper(code)]
	return ok
}

// Merge combines two markers; used when a logical line spans several
// physical lines and more than one carries a marker.
func (m Marker) Merge(other Marker) Marker {
	out := Marker{All: m.All || other.All}
	if out.All {
		return out
	}
	out.Codes = make(map[string]struct{}, len(m.Codes)+len(other.Codes))
	for c := range m.Codes {
		out.Codes[c] = struct{}{}
	}
	for c := range other.Codes {
		out.Codes[c] = struct{}{}
	}
	return out
}
