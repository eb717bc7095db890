package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/hackstyle/hlint/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// FormatIssuesWithArrows renders findings with the offending source line
// and a caret under the reported column.
func FormatIssuesWithArrows(issues []tt.Issue, sourceCode *SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(formatIssueHeader(issue))
		builder.WriteString(formatIssueBody(issue, sourceCode))
	}
	return builder.String()
}

func formatIssueHeader(issue tt.Issue) string {
	return errorStyle.Sprint("error: ") + ruleStyle.Sprint(issue.Rule) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d\n", issue.Filename, issue.Line)
}

func formatIssueBody(issue tt.Issue, sourceCode *SourceCode) string {
	var result strings.Builder

	lineNumberStr := fmt.Sprintf("%d", issue.Line)
	padding := strings.Repeat(" ", len(lineNumberStr)-1)
	result.WriteString(lineStyle.Sprintf("  %s|\n", padding))

	raw := ""
	if issue.Line >= 1 && issue.Line <= len(sourceCode.Lines) {
		raw = sourceCode.Lines[issue.Line-1]
	}
	line := expandTabs(raw)
	result.WriteString(lineStyle.Sprintf("%s | ", lineNumberStr))
	result.WriteString(line + "\n")

	result.WriteString(lineStyle.Sprintf("  %s| ", padding))
	result.WriteString(strings.Repeat(" ", caretColumn(line, issue.Column)))
	result.WriteString(messageStyle.Sprint("^ "))
	result.WriteString(messageStyle.Sprintf("%s\n\n", issue.Message))

	return result.String()
}

// caretColumn maps a column offset within the logical line onto the
// physical line, which still carries its indentation.
func caretColumn(physical string, column int) int {
	indent := len(physical) - len(strings.TrimLeft(physical, " \t"))
	col := indent + column
	if col > len(physical) {
		col = len(physical)
	}
	return col
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}
