package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "", want: DialectModern},
		{in: "modern", want: DialectModern},
		{in: "legacy", want: DialectLegacy},
		{in: "python4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("in="+tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNoneLiteral(t *testing.T) {
	tests := []struct {
		name    string
		node    Expr
		dialect Dialect
		want    bool
	}{
		{name: "modern constant", node: &Literal{Kind: LitNone, Value: "None"}, dialect: DialectModern, want: true},
		{name: "modern name is not none", node: &Name{ID: "None"}, dialect: DialectModern, want: false},
		{name: "legacy reserved name", node: &Name{ID: "None"}, dialect: DialectLegacy, want: true},
		{name: "legacy other identifier", node: &Name{ID: "none"}, dialect: DialectLegacy, want: false},
		{name: "legacy ordinary variable", node: &Name{ID: "result"}, dialect: DialectLegacy, want: false},
		{name: "legacy constant node is not legacy none", node: &Literal{Kind: LitNone, Value: "None"}, dialect: DialectLegacy, want: false},
		{name: "true is not none", node: &Literal{Kind: LitTrue, Value: "True"}, dialect: DialectModern, want: false},
		{name: "string is not none", node: &Literal{Kind: LitString, Value: "'None'"}, dialect: DialectModern, want: false},
		{name: "call is not none", node: &Call{Func: &Name{ID: "f"}}, dialect: DialectModern, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoneLiteral(tt.node, tt.dialect))
		})
	}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	expr := mustParse(t, "self.assertEqual({}.get('bar', None), [x for x in xs])", DialectModern)

	var names []string
	nones := 0
	Inspect(expr, func(node Expr) bool {
		switch n := node.(type) {
		case *Name:
			names = append(names, n.ID)
		case *Literal:
			if n.Kind == LitNone {
				nones++
			}
		}
		return true
	})

	assert.Contains(t, names, "self")
	assert.Contains(t, names, "x")
	assert.Contains(t, names, "xs")
	assert.Equal(t, 1, nones)
}

func TestInspectPrune(t *testing.T) {
	expr := mustParse(t, "f(g(None))", DialectModern)

	visited := 0
	Inspect(expr, func(node Expr) bool {
		visited++
		_, isCall := node.(*Call)
		if isCall && visited > 1 {
			return false // prune the inner call
		}
		return true
	})

	// outer call, its func name, inner call; None inside is pruned
	assert.Equal(t, 3, visited)
}
