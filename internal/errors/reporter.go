package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// ErrorReporter renders diagnostics against the source they came from
type ErrorReporter struct {
	filename   string
	source     string
	lines      []string
	lineStarts []int
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &ErrorReporter{
		filename:   filename,
		source:     source,
		lines:      strings.Split(source, "\n"),
		lineStarts: starts,
	}
}

// PositionOf maps a byte offset to a 1-based line and column.
func (er *ErrorReporter) PositionOf(offset int) Position {
	offset = min(max(offset, 0), len(er.source))
	line := sort.Search(len(er.lineStarts), func(i int) bool {
		return er.lineStarts[i] > offset
	}) - 1
	return Position{Line: line + 1, Column: offset - er.lineStarts[line] + 1}
}

// FormatDiagnostic formats a diagnostic with a source excerpt and a caret
// marker under the offending token
func (er *ErrorReporter) FormatDiagnostic(d Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[P0002]: message
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	pos := er.PositionOf(d.Token.Pos)
	lineNumberWidth := er.getLineNumberWidth(pos.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, pos.Line, pos.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if pos.Line > 1 && pos.Line-1 <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, pos.Line-1)),
			dim("│"),
			er.lines[pos.Line-2]))
	}

	if pos.Line <= len(er.lines) {
		lineContent := er.lines[pos.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, pos.Line)),
			dim("│"),
			lineContent))

		// the marker never runs past the end of the line
		length := min(d.Token.Length, len(lineContent)-pos.Column+1)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), er.createMarker(pos.Column, length, d.Level)))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats every diagnostic in source order.
func (er *ErrorReporter) FormatAll(ds *Diagnostics) string {
	var b strings.Builder
	for _, d := range ds.All() {
		b.WriteString(er.FormatDiagnostic(d))
	}
	return b.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column-1))
	markerChar := "^"
	if level == Note {
		markerChar = "-"
	}
	return spaces + er.getLevelColor(level)(strings.Repeat(markerChar, length))
}

func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
