package grammar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var (
	buildOnce      sync.Once
	selectorParser *participle.Parser[Selector]
	buildErr       error
)

func build() {
	selectorParser, buildErr = participle.Build[Selector](
		participle.Lexer(SelectorLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
}

// ParseSelector parses a selector expression.
func ParseSelector(src string) (*Selector, error) {
	buildOnce.Do(build)
	if buildErr != nil {
		return nil, fmt.Errorf("failed to build parser: %w", buildErr)
	}

	sel, err := selectorParser.ParseString("", src)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// FormatError renders a selector parse error with a caret under the
// offending column.
func FormatError(src string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return color.RedString("invalid selector: %s", err)
	}

	pos := pe.Position()
	column := pos.Column
	if column < 1 {
		column = 1
	}
	if column > len(src)+1 {
		column = len(src) + 1
	}
	caret := strings.Repeat(" ", column-1) + "^"

	var b strings.Builder
	b.WriteString(color.RedString("invalid selector at column %d:", column))
	b.WriteString("\n  " + src + "\n  ")
	b.WriteString(color.HiRedString(caret))
	b.WriteString("\n→ " + pe.Message())
	return b.String()
}
