package parser

import (
	"asparse/internal/ast"
	"asparse/token"
)

// parseFunction parses a global function or, with isMethod, a class method,
// constructor or destructor.
func (p *Parser) parseFunction(isMethod bool) *ast.Node {
	node := ast.NewNode(ast.FUNCTION)

	if isMethod {
		if t := p.peek(); t.Kind == token.PRIVATE || t.Kind == token.PROTECTED {
			node.AddChildLast(p.parseOneOf(token.PRIVATE, token.PROTECTED))
		}
	} else {
		p.parseModifiers(node, funcModifiers...)
	}
	if p.syntaxError {
		return node
	}

	t1, t2 := p.peek2()
	isConstructor := isMethod && t1.Kind == token.IDENTIFIER && t2.Kind == token.OPEN_PAREN
	isDestructor := isMethod && t1.Kind == token.BIT_NOT

	if !isConstructor && !isDestructor {
		node.AddChildLast(p.parseType(true, false, false))
		if p.syntaxError {
			return node
		}
		node.AddChildLast(p.parseTypeMod(false))
		if p.syntaxError {
			return node
		}
	}
	if isDestructor {
		node.AddChildLast(p.parseToken(token.BIT_NOT))
	}

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseParameterList())
	if p.syntaxError {
		return node
	}

	if isMethod && p.peek().Kind == token.CONST {
		node.AddChildLast(p.parseToken(token.CONST))
	}
	p.parseModifiers(node, methodAttribute...)

	if p.peek().Kind == token.END_STATEMENT {
		// external declaration without a body
		node.AddChildLast(p.parseToken(token.END_STATEMENT))
		return node
	}

	node.AddChildLast(p.parseStatementBlock())
	return node
}

// parseLambda parses 'function(a, int b) { ... }'. Parameter types are
// optional.
func (p *Parser) parseLambda() *ast.Node {
	node := ast.NewNode(ast.FUNCTION)

	t := p.next()
	if !p.identifierIs(t, token.FUNCTION) {
		p.errorExpectedWords(t, token.FUNCTION)
		return node
	}
	node.UpdateSourcePosition(t.Pos, t.Length)

	if !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	for t = p.peek(); t.Kind != token.CLOSE_PAREN && t.Kind != token.END; t = p.peek() {
		if after, ok := p.IsType(); ok && (after.Kind == token.AMP || after.Kind == token.IDENTIFIER) {
			node.AddChildLast(p.parseType(true, false, false))
			if p.syntaxError {
				return node
			}
			node.AddChildLast(p.parseTypeMod(true))
			if p.syntaxError {
				return node
			}
		}

		node.AddChildLast(p.parseIdentifier())
		if p.syntaxError {
			return node
		}

		t = p.next()
		if t.Kind == token.CLOSE_PAREN {
			p.rewind(t)
			continue
		}
		if t.Kind != token.LIST_SEPARATOR {
			p.errorExpectedKinds(t, token.LIST_SEPARATOR, token.CLOSE_PAREN)
			return node
		}
	}

	if !p.expect(node, token.CLOSE_PAREN) {
		return node
	}
	node.AddChildLast(p.parseStatementBlock())
	return node
}

// parseParameterList parses '(type [mod] [name] [= default], ...)'.
func (p *Parser) parseParameterList() *ast.Node {
	node := ast.NewNode(ast.PARAMETER_LIST)

	if !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	t := p.next()
	if t.Kind == token.CLOSE_PAREN {
		node.UpdateSourcePosition(t.Pos, t.Length)
		return node
	}
	if t.Kind == token.VOID {
		if t2 := p.next(); t2.Kind == token.CLOSE_PAREN {
			node.UpdateSourcePosition(t2.Pos, t2.Length)
			return node
		}
	}
	p.rewind(t)

	for {
		node.AddChildLast(p.parseType(true, true, false))
		if p.syntaxError {
			return node
		}
		node.AddChildLast(p.parseTypeMod(true))
		if p.syntaxError {
			return node
		}

		if p.peek().Kind == token.IDENTIFIER {
			node.AddChildLast(p.parseIdentifier())
			if p.syntaxError {
				return node
			}
		}

		t = p.next()
		if t.Kind == token.ASSIGN {
			node.AddChildLast(p.parseExpression())
			if p.syntaxError {
				return node
			}
			t = p.next()
		}

		switch t.Kind {
		case token.CLOSE_PAREN:
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		case token.LIST_SEPARATOR:
			continue
		default:
			p.errorExpectedKinds(t, token.CLOSE_PAREN, token.LIST_SEPARATOR)
			return node
		}
	}
}
