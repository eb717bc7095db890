package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, input string) []token {
	t.Helper()
	tokens, err := newLexer(input).run()
	require.NoError(t, err)
	return tokens
}

func texts(tokens []token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.kind == tokEOF {
			continue
		}
		out = append(out, tok.text)
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "method call",
			input: "self.assertEqual(None, 'foo')",
			want:  []string{"self", ".", "assertEqual", "(", "None", ",", "'foo'", ")"},
		},
		{
			name:  "operators greedy",
			input: "a <= b == c ** d // e",
			want:  []string{"a", "<=", "b", "==", "c", "**", "d", "//", "e"},
		},
		{
			name:  "string prefixes",
			input: "r'raw' b\"bytes\"",
			want:  []string{"r'raw'", "b\"bytes\""},
		},
		{
			name:  "escaped quote",
			input: `'it\'s'`,
			want:  []string{`'it\'s'`},
		},
		{
			name:  "triple quoted",
			input: `'''a 'b' c'''`,
			want:  []string{`'''a 'b' c'''`},
		},
		{
			name:  "numbers",
			input: "1 2.5 0x1f 1e-5 10_000",
			want:  []string{"1", "2.5", "0x1f", "1e-5", "10_000"},
		},
		{
			name:  "walrus and colon",
			input: "{x := 1: y}",
			want:  []string{"{", "x", ":=", "1", ":", "y", "}"},
		},
		{
			name:  "ellipsis",
			input: "f(...)",
			want:  []string{"f", "(", "...", ")"},
		},
		{
			name:  "trailing comment ends scan",
			input: "x = 1  # tail",
			want:  []string{"x", "=", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(lex(t, tt.input)))
		})
	}
}

func TestLexerOffsets(t *testing.T) {
	tokens := lex(t, "self.assertEqual(None)")
	require.GreaterOrEqual(t, len(tokens), 5)
	assert.Equal(t, 0, tokens[0].off)  // self
	assert.Equal(t, 4, tokens[1].off)  // .
	assert.Equal(t, 5, tokens[2].off)  // assertEqual
	assert.Equal(t, 16, tokens[3].off) // (
	assert.Equal(t, 17, tokens[4].off) // None
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := newLexer("f('abc").run()
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Offset)
}
