package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackstyle/hlint/internal/pyast"
)

func TestCheckBareExcept(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		suppressed bool
		wantCol    int
		wantCount  int
	}{
		{name: "bare except", line: "except:", wantCol: 6, wantCount: 1},
		{name: "bare except with body", line: "except:    pass", wantCol: 6, wantCount: 1},
		{name: "typed except", line: "except Exception:", wantCount: 0},
		{name: "except mid-line", line: "x = 'except:'", wantCount: 0},
		{name: "suppressed", line: "except:", suppressed: true, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckBareExcept(tt.line, tt.suppressed)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, "H201", issues[0].Code)
				assert.Equal(t, tt.wantCol, issues[0].Column)
				assert.Equal(t, "H201: no 'except:' at least use 'except Exception:'", issues[0].Message)
			}
		})
	}
}

func TestCheckBroadAssertRaises(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		suppressed bool
		wantCount  int
	}{
		{name: "exception with callable", line: "self.assertRaises(Exception, foo)", wantCount: 1},
		{name: "exception alone", line: "self.assertRaises(Exception)", wantCount: 1},
		{name: "specific exception", line: "self.assertRaises(NovaException, foo)", wantCount: 0},
		{name: "prefix does not count", line: "self.assertRaises(ExceptionStrangeNotation, foo)", wantCount: 0},
		{name: "suppressed", line: "self.assertRaises(Exception, foo)", suppressed: true, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckBroadAssertRaises(tt.line, tt.suppressed)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, "H202", issues[0].Code)
				assert.Equal(t, 1, issues[0].Column)
				assert.Equal(t, "H202: assertRaises Exception too broad", issues[0].Message)
			}
		})
	}
}

func TestCheckAssertIsNone(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		suppressed bool
		wantCols   []int
	}{
		{name: "assertEqual none first", line: "self.assertEqual(None, 'foo')", wantCols: []int{5}},
		{name: "assertEqual no none", line: "self.assertEqual('foo', 'bar')"},
		{name: "assertIs ok", line: "self.assertIs('foo', 'bar')"},
		{name: "assertIsNot third arg ignored", line: "self.assertIsNot('foo', 'bar', None)"},
		{name: "assertNotEqual none second", line: "self.assertNotEqual('foo', None)", wantCols: []int{5}},
		{name: "assertIs none first", line: "self.assertIs(None, 'foo', 'bar')", wantCols: []int{5}},
		{name: "assertIsNot none second", line: "self.assertIsNot('foo', None, 'bar')", wantCols: []int{5}},
		{name: "nested in outer call", line: "foo(self.assertIsNot('foo', None, 'bar'))", wantCols: []int{9}},
		{name: "nested without none", line: "foo(self.assertIsNot('foo', 'bar'))"},
		{name: "none inside non-target call", line: "self.assertNotEqual('foo', {}.get('bar', None))"},
		{name: "assertIsNone itself is fine", line: "self.assertIsNone('foo')"},
		{name: "suppressed", line: "self.assertEqual(None, 'foo')", suppressed: true},
	}

	for _, mode := range []pyast.Dialect{pyast.DialectModern, pyast.DialectLegacy} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				issues, err := CheckAssertIsNone(tt.line, tt.suppressed, mode, DefaultAssertMethods, DefaultNoneArgCount)
				require.NoError(t, err)
				require.Len(t, issues, len(tt.wantCols))
				for i, col := range tt.wantCols {
					assert.Equal(t, "H203", issues[i].Code)
					assert.Equal(t, col, issues[i].Column)
					assert.Equal(t, "H203: Use assertIs(Not)None to check for None", issues[i].Message)
				}
			})
		}
	}
}

func TestCheckAssertIsNoneMultipleMethods(t *testing.T) {
	// one finding per method name present in the line
	line := "self.assertEqual(None, x) and self.assertIsNot(None, y)"
	issues, err := CheckAssertIsNone(line, false, pyast.DialectModern, DefaultAssertMethods, DefaultNoneArgCount)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 5, issues[0].Column)
	assert.Equal(t, 35, issues[1].Column)
}

func TestCheckAssertIsNoneParseFailure(t *testing.T) {
	// the substring is present but the line is not parseable; the error
	// must surface instead of being treated as "no findings"
	_, err := CheckAssertIsNone("self.assertEqual(None, ", false, pyast.DialectModern, DefaultAssertMethods, DefaultNoneArgCount)
	require.Error(t, err)

	var parseErr *pyast.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCheckAssertIsNoneIdempotent(t *testing.T) {
	line := "self.assertEqual(None, 'foo')"
	first, err := CheckAssertIsNone(line, false, pyast.DialectModern, DefaultAssertMethods, DefaultNoneArgCount)
	require.NoError(t, err)
	second, err := CheckAssertIsNone(line, false, pyast.DialectModern, DefaultAssertMethods, DefaultNoneArgCount)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
