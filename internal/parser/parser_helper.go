package parser

import (
	"fmt"
	"strings"

	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

func (p *Parser) next() token.Token {
	return p.ts.Consume()
}

func (p *Parser) peek() token.Token {
	return p.ts.Peek()
}

// peek2 returns the next two significant tokens without consuming them.
func (p *Parser) peek2() (token.Token, token.Token) {
	t1 := p.ts.Consume()
	t2 := p.ts.Consume()
	p.ts.RewindTo(t1)
	return t1, t2
}

func (p *Parser) rewind(t token.Token) {
	p.ts.RewindTo(t)
}

func (p *Parser) text(t token.Token) string {
	return t.Text(p.source)
}

func (p *Parser) identifierIs(t token.Token, word string) bool {
	return t.Kind == token.IDENTIFIER && p.text(t) == word
}

func (p *Parser) isDataType(t token.Token) bool {
	return t.Kind == token.IDENTIFIER || t.Kind.IsPrimitiveType()
}

func (p *Parser) isTemplateType(t token.Token) bool {
	return t.Kind == token.IDENTIFIER && p.templates[p.text(t)]
}

// Error records a syntax error at tok, raises the error flag and rewinds the
// stream to tok so recovery starts from the failure point.
func (p *Parser) Error(code, message string, tok token.Token) {
	p.diags.AddError(code, message, tok)
	p.syntaxError = true
	p.rewind(tok)
}

func (p *Parser) Warning(code, message string, tok token.Token) {
	p.diags.AddWarning(code, message, tok)
}

func (p *Parser) Info(message string, tok token.Token) {
	p.diags.AddInfo(errors.InfoWhileParsing, message, tok)
}

// errorExpected reports that what was expected where tok was found.
func (p *Parser) errorExpected(code, what string, tok token.Token) {
	p.Error(code, fmt.Sprintf("expected %s, instead found %s", what, errors.DescribeToken(tok, p.source)), tok)
}

func (p *Parser) errorExpectedKinds(tok token.Token, kinds ...token.Kind) {
	words := make([]string, len(kinds))
	for i, k := range kinds {
		words[i] = k.Definition()
	}
	p.errorExpectedWords(tok, words...)
}

func (p *Parser) errorExpectedWords(tok token.Token, words ...string) {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	what := quoted[0]
	if n := len(quoted); n > 1 {
		what = strings.Join(quoted[:n-1], ", ") + " or " + quoted[n-1]
	}
	p.errorExpected(errors.ErrorExpectedToken, what, tok)
}

func (p *Parser) errorUnexpected(tok token.Token) {
	if tok.Kind == token.END {
		p.Error(errors.ErrorUnexpectedEOF, "unexpected end of file", tok)
		return
	}
	p.Error(errors.ErrorUnexpectedToken, fmt.Sprintf("unexpected token %s", errors.DescribeToken(tok, p.source)), tok)
}

// expect consumes a token of kind k and widens node over it.
func (p *Parser) expect(node *ast.Node, k token.Kind) bool {
	t := p.next()
	if t.Kind != k {
		p.errorExpectedKinds(t, k)
		return false
	}
	node.UpdateSourcePosition(t.Pos, t.Length)
	return true
}

// parseToken returns a terminal node holding the next token, which must be
// of kind k.
func (p *Parser) parseToken(k token.Kind) *ast.Node {
	node := ast.NewNode(ast.UNDEFINED)
	t := p.next()
	if t.Kind != k {
		p.errorExpectedKinds(t, k)
		return node
	}
	node.SetToken(t)
	return node
}

func (p *Parser) parseOneOf(kinds ...token.Kind) *ast.Node {
	node := ast.NewNode(ast.UNDEFINED)
	t := p.next()
	for _, k := range kinds {
		if t.Kind == k {
			node.SetToken(t)
			return node
		}
	}
	p.errorExpectedKinds(t, kinds...)
	return node
}

func (p *Parser) parseIdentifier() *ast.Node {
	node := ast.NewNode(ast.IDENTIFIER)
	t := p.next()
	if t.Kind != token.IDENTIFIER {
		p.errorExpected(errors.ErrorExpectedIdentifier, "identifier", t)
		return node
	}
	node.SetToken(t)
	return node
}

// parseModifiers appends a terminal node for each leading contextual word in
// words. Modifiers are not Identifier nodes so they never shadow a name.
func (p *Parser) parseModifiers(node *ast.Node, words ...string) {
	for {
		t := p.peek()
		if !p.isOneOfWords(t, words...) {
			return
		}
		node.AddChildLast(p.parseToken(token.IDENTIFIER))
	}
}

func (p *Parser) isOneOfWords(t token.Token, words ...string) bool {
	if t.Kind != token.IDENTIFIER {
		return false
	}
	text := p.text(t)
	for _, w := range words {
		if text == w {
			return true
		}
	}
	return false
}

// skipBlock consumes tokens up to and including the '}' matching an already
// consumed '{'. It stops at END.
func (p *Parser) skipBlock() token.Token {
	level := 1
	var t token.Token
	for level > 0 {
		t = p.next()
		switch t.Kind {
		case token.START_BLOCK:
			level++
		case token.END_BLOCK:
			level--
		case token.END:
			return t
		}
	}
	return t
}
