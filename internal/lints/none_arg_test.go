package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackstyle/hlint/internal/pyast"
)

func scan(t *testing.T, line, funcName string, numArgs int, d pyast.Dialect) bool {
	t.Helper()
	tree, err := pyast.ParseLine(line, d)
	require.NoError(t, err)
	return NoneArgScanner{FuncName: funcName, NumArgs: numArgs, Dialect: d}.Scan(tree)
}

func TestNoneArgScanner(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		funcName string
		numArgs  int
		want     bool
	}{
		{name: "direct none", line: "self.assertEqual(None, 'foo')", funcName: "assertEqual", numArgs: 2, want: true},
		{name: "none in second slot", line: "self.assertEqual('foo', None)", funcName: "assertEqual", numArgs: 2, want: true},
		{name: "none beyond k", line: "self.assertEqual('a', 'b', None)", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "k of one ignores second", line: "self.assertEqual('a', None)", funcName: "assertEqual", numArgs: 1, want: false},
		{name: "no call at all", line: "x = None", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "bare function call", line: "assertEqual(None)", funcName: "assertEqual", numArgs: 2, want: true},
		{name: "fewer args than k", line: "assertEqual(None)", funcName: "assertEqual", numArgs: 5, want: true},
		{name: "wrong name", line: "self.assertSame(None)", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "nested target call", line: "foo(bar(self.assertEqual(None, 1)))", funcName: "assertEqual", numArgs: 2, want: true},
		{name: "none inside non-target nested call", line: "self.assertEqual('foo', {}.get('bar', None))", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "subscripted callee skipped", line: "checks['assertEqual'](None)", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "call of call skipped", line: "make()(None)", funcName: "make", numArgs: 2, want: false},
		{name: "keyword arg not positional", line: "self.assertEqual(x, msg=None)", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "variable named none-ish", line: "self.assertEqual(none, 'foo')", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "none in string", line: "self.assertEqual('None', 'foo')", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "comparison is not a literal", line: "self.assertEqual(x == None, 'foo')", funcName: "assertEqual", numArgs: 2, want: false},
		{name: "match does not stop the walk", line: "self.assertEqual(None, other.assertEqual(None, 1))", funcName: "assertEqual", numArgs: 2, want: true},
	}

	for _, mode := range []pyast.Dialect{pyast.DialectModern, pyast.DialectLegacy} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				got := scan(t, tt.line, tt.funcName, tt.numArgs, mode)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}
