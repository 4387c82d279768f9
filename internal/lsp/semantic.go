package lsp

import (
	"sort"
	"strings"

	"asparse/internal/ast"
	"asparse/internal/parser"
	"asparse/token"
)

// SemanticTokenTypes is the legend advertised to the client. A token's type
// is its index in this list.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"method",
	"variable",
	"parameter",
	"property",
	"enumMember",
	"keyword",
	"modifier",
	"number",
	"string",
	"comment",
	"operator",
}

// SemanticTokenModifiers is the modifier legend; a token's modifiers are a
// bitmask over it.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"static",
	"abstract",
}

// SemanticToken is one highlighted span. Line and StartChar are 0-based
// and Length is in UTF-16 code units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

type span struct {
	pos, end int
	typ      string
	decl     bool
}

// collectSemanticTokens classifies the terminals of the tree and fills the
// gaps with keywords and comments from the token stream.
func collectSemanticTokens(d *document) []SemanticToken {
	if d == nil || d.result.Root == nil {
		return nil
	}
	source := d.result.Source

	byPos := make(map[int]span)
	ast.Walk(d.result.Root, func(n *ast.Node) bool {
		if !n.IsTerminal() || n.Length == 0 {
			return true
		}
		if typ, decl := classify(n); typ != "" {
			byPos[n.Pos] = span{pos: n.Pos, end: n.End(), typ: typ, decl: decl}
		}
		return true
	})

	for _, t := range parser.NewScanner(source).ScanTokens(true) {
		if _, ok := byPos[t.Pos]; ok {
			continue
		}
		switch {
		case t.Kind == token.ONE_LINE_COMMENT || t.Kind == token.MULTI_LINE_COMMENT:
			byPos[t.Pos] = span{pos: t.Pos, end: t.End(), typ: "comment"}
		case t.Kind.IsReserved() && isLetter(source[t.Pos]):
			byPos[t.Pos] = span{pos: t.Pos, end: t.End(), typ: "keyword"}
		}
	}

	spans := make([]span, 0, len(byPos))
	for _, s := range byPos {
		spans = append(spans, s)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].pos < spans[j].pos })

	var tokens []SemanticToken
	for _, s := range spans {
		tokens = append(tokens, d.splitLines(s)...)
	}
	return tokens
}

// splitLines emits one token per line covered by s. Clients are not
// required to support multiline tokens.
func (d *document) splitLines(s span) []SemanticToken {
	var out []SemanticToken
	mods := 0
	if s.decl {
		mods = 1 << indexOf("declaration", SemanticTokenModifiers)
	}

	text := d.result.Source[s.pos:s.end]
	pos := s.pos
	for _, line := range strings.Split(text, "\n") {
		piece := strings.TrimSuffix(line, "\r")
		if piece != "" {
			start := d.position(pos)
			out = append(out, SemanticToken{
				Line:           start.Line,
				StartChar:      start.Character,
				Length:         uint32(utf16Len(piece)),
				TokenType:      indexOf(s.typ, SemanticTokenTypes),
				TokenModifiers: mods,
			})
		}
		pos += len(line) + 1
	}
	return out
}

func classify(n *ast.Node) (string, bool) {
	k := n.TokenKind
	switch n.Type {
	case ast.CONSTANT:
		switch {
		case k.IsString():
			return "string", false
		case k == token.TRUE || k == token.FALSE || k == token.NULL:
			return "keyword", false
		}
		return "number", false
	case ast.DATA_TYPE:
		if k == token.IDENTIFIER {
			return "type", false
		}
		if k.IsReserved() {
			return "keyword", false
		}
	case ast.EXPR_OPERATOR, ast.EXPR_PRE_OP, ast.EXPR_POST_OP:
		return "operator", false
	case ast.IDENTIFIER:
		return classifyIdentifier(n)
	case ast.UNDEFINED:
		switch {
		case k == token.IDENTIFIER:
			return "modifier", false
		case k.IsReserved():
			return "keyword", false
		}
	}
	return "", false
}

func classifyIdentifier(n *ast.Node) (string, bool) {
	parent := n.Parent
	if parent == nil {
		return "variable", false
	}
	first := parent.FirstChildOfType(ast.IDENTIFIER) == n

	switch parent.Type {
	case ast.NAMESPACE:
		return "namespace", true
	case ast.SCOPE:
		return "namespace", false
	case ast.CLASS, ast.INTERFACE, ast.TYPEDEF, ast.FUNC_DEF:
		return "type", first
	case ast.IDENTIFIER:
		// inheritance list entry
		return "type", false
	case ast.ENUM:
		if first {
			return "type", true
		}
		return "enumMember", true
	case ast.FUNCTION:
		if !isDeclarationScope(parent.Parent) {
			// lambda parameters
			return "parameter", true
		}
		if isTypeBody(parent.Parent) {
			return "method", true
		}
		return "function", true
	case ast.VIRTUAL_PROPERTY:
		if parent.Parent != nil && parent.Parent.Type == ast.VIRTUAL_PROPERTY {
			// get or set accessor
			return "keyword", false
		}
		return "property", true
	case ast.DECLARATION:
		if isTypeBody(parent.Parent) {
			return "property", true
		}
		return "variable", true
	case ast.PARAMETER_LIST:
		return "parameter", true
	case ast.NAMED_ARGUMENT:
		return "parameter", false
	case ast.IMPORT:
		return "function", true
	case ast.FUNCTION_CALL:
		if parent.Parent != nil && parent.Parent.Type == ast.EXPR_POST_OP {
			return "method", false
		}
		return "function", false
	case ast.EXPR_POST_OP:
		return "property", false
	}
	return "variable", false
}

func isTypeBody(n *ast.Node) bool {
	return n != nil && (n.Type == ast.CLASS || n.Type == ast.INTERFACE)
}

func isDeclarationScope(n *ast.Node) bool {
	return n != nil && (n.Type == ast.SCRIPT || isTypeBody(n))
}

// encodeSemanticTokens converts tokens to the LSP wire format using
// delta-line and delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}
	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
