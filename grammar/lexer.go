package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SelectorLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Node type names and identifier values
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Integer", Pattern: `[0-9]+`},

	// '>>' must come before '>'
	{Name: "Descendant", Pattern: `>>`},
	{Name: "Punctuation", Pattern: `[>\[\]:*]`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
