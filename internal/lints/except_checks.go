package lints

import (
	"regexp"
	"strings"

	"github.com/hackstyle/hlint/internal/pyast"
	tt "github.com/hackstyle/hlint/internal/types"
)

var reAssertRaisesException = regexp.MustCompile(`self\.assertRaises\(Exception[,\)]`)

// DefaultAssertMethods are the assertion methods checked for None arguments,
// tried in this order.
var DefaultAssertMethods = []string{"assertEqual", "assertIs", "assertNotEqual", "assertIsNot"}

// DefaultNoneArgCount is how many leading positional arguments the None
// check inspects.
const DefaultNoneArgCount = 2

// CheckBareExcept flags bare "except:" clauses (H201). Use at the very
// least "except Exception:" instead of catching everything silently.
func CheckBareExcept(line string, suppressed bool) []tt.Issue {
	if suppressed {
		return nil
	}
	if !strings.HasPrefix(line, "except:") {
		return nil
	}
	return []tt.Issue{{
		Rule:    "bare-except",
		Code:    "H201",
		Column:  6,
		Message: "H201: no 'except:' at least use 'except Exception:'",
	}}
}

// CheckBroadAssertRaises flags assertRaises(Exception, ...) and
// assertRaises(Exception) (H202): asserting on the broadest exception type
// makes the test pass for the wrong failures.
func CheckBroadAssertRaises(line string, suppressed bool) []tt.Issue {
	if suppressed {
		return nil
	}
	if !reAssertRaisesException.MatchString(line) {
		return nil
	}
	return []tt.Issue{{
		Rule:    "broad-assert-raises",
		Code:    "H202",
		Column:  1,
		Message: "H202: assertRaises Exception too broad",
	}}
}

// CheckAssertIsNone flags equality-style assertions given a None literal
// among their first positional arguments (H203): assertIsNone and
// assertIsNotNone say what the test means.
//
// Every method name whose ".name(" substring appears in the line is
// scanned, so a single line can produce one finding per method name. The
// line is parsed at most once; a parse failure is returned to the caller
// because the host already tokenized this text, and hiding the mismatch
// would mask a contract violation between tokenizer and parser.
func CheckAssertIsNone(line string, suppressed bool, d pyast.Dialect, methods []string, numArgs int) ([]tt.Issue, error) {
	if suppressed {
		return nil, nil
	}
	var issues []tt.Issue
	var tree pyast.Expr
	for _, method := range methods {
		idx := strings.Index(line, "."+method+"(")
		if idx < 0 {
			continue
		}
		if tree == nil {
			var err error
			tree, err = pyast.ParseLine(line, d)
			if err != nil {
				return nil, err
			}
		}
		scanner := NoneArgScanner{FuncName: method, NumArgs: numArgs, Dialect: d}
		if scanner.Scan(tree) {
			issues = append(issues, tt.Issue{
				Rule:    "assert-is-none",
				Code:    "H203",
				Column:  idx + 1,
				Message: "H203: Use assertIs(Not)None to check for None",
			})
		}
	}
	return issues, nil
}
