package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

func (p *Parser) parseClass() *ast.Node {
	node := ast.NewNode(ast.CLASS)

	p.parseModifiers(node, declModifiers...)
	if !p.expect(node, token.CLASS) {
		return node
	}

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}

	t := p.peek()
	if t.Kind == token.END_STATEMENT {
		// external shared class C;
		node.AddChildLast(p.parseToken(token.END_STATEMENT))
		return node
	}

	if t.Kind == token.COLON {
		p.next()
		if !p.parseInheritanceList(node) {
			return node
		}
	}

	if !p.expect(node, token.START_BLOCK) {
		return node
	}

	for t = p.peek(); t.Kind != token.END_BLOCK && t.Kind != token.END; t = p.peek() {
		switch {
		case t.Kind == token.FUNCDEF:
			node.AddChildLast(p.parseFuncDef())
		case p.IsFuncDecl(true):
			node.AddChildLast(p.parseFunction(true))
		case p.IsVirtualPropertyDecl():
			node.AddChildLast(p.parseVirtualPropertyDecl(true, false))
		case p.IsVarDecl():
			node.AddChildLast(p.parseDeclaration(true))
		case t.Kind == token.END_STATEMENT:
			p.next()
		default:
			p.errorExpected(errors.ErrorExpectedMethodOrProperty, "method or property", t)
			return node
		}
		if p.syntaxError {
			return node
		}
	}

	p.expect(node, token.END_BLOCK)
	return node
}

// parseInheritanceList parses 'Base, ns::Iface' after the ':' of a class or
// interface header. Each entry is an Identifier node wrapping an optional
// scope and the name.
func (p *Parser) parseInheritanceList(node *ast.Node) bool {
	for {
		inherit := ast.NewNode(ast.IDENTIFIER)
		node.AddChildLast(inherit)
		p.parseOptionalScope(inherit)
		inherit.AddChildLast(p.parseIdentifier())
		if p.syntaxError {
			return false
		}
		if p.peek().Kind != token.LIST_SEPARATOR {
			return true
		}
		p.next()
	}
}

func (p *Parser) parseInterface() *ast.Node {
	node := ast.NewNode(ast.INTERFACE)

	p.parseModifiers(node, funcModifiers...)
	if !p.expect(node, token.INTERFACE) {
		return node
	}

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}

	t := p.peek()
	if t.Kind == token.END_STATEMENT {
		node.AddChildLast(p.parseToken(token.END_STATEMENT))
		return node
	}

	if t.Kind == token.COLON {
		p.next()
		if !p.parseInheritanceList(node) {
			return node
		}
	}

	if !p.expect(node, token.START_BLOCK) {
		return node
	}

	for t = p.peek(); t.Kind != token.END_BLOCK && t.Kind != token.END; t = p.peek() {
		switch {
		case p.IsVirtualPropertyDecl():
			node.AddChildLast(p.parseVirtualPropertyDecl(true, true))
		case t.Kind == token.END_STATEMENT:
			p.next()
		default:
			node.AddChildLast(p.parseInterfaceMethod())
		}
		if p.syntaxError {
			return node
		}
	}

	p.expect(node, token.END_BLOCK)
	return node
}

func (p *Parser) parseInterfaceMethod() *ast.Node {
	node := ast.NewNode(ast.FUNCTION)

	node.AddChildLast(p.parseType(true, false, false))
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseTypeMod(false))
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseParameterList())
	if p.syntaxError {
		return node
	}

	if p.peek().Kind == token.CONST {
		node.AddChildLast(p.parseToken(token.CONST))
	}

	p.expect(node, token.END_STATEMENT)
	return node
}

// parseVirtualPropertyDecl parses 'int prop { get { ... } set { ... } }'.
// Each accessor becomes a nested VirtualProperty node holding the accessor
// name and, outside interfaces, its body.
func (p *Parser) parseVirtualPropertyDecl(isMethod, isInterface bool) *ast.Node {
	node := ast.NewNode(ast.VIRTUAL_PROPERTY)

	if isMethod {
		if t := p.peek(); t.Kind == token.PRIVATE || t.Kind == token.PROTECTED {
			node.AddChildLast(p.parseOneOf(token.PRIVATE, token.PROTECTED))
		}
	}

	node.AddChildLast(p.parseType(true, false, false))
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseTypeMod(false))
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}

	if !p.expect(node, token.START_BLOCK) {
		return node
	}

	for {
		t := p.next()
		if t.Kind == token.END_BLOCK {
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		}
		if !p.identifierIs(t, token.GET) && !p.identifierIs(t, token.SET) {
			p.errorExpectedWords(t, token.GET, token.SET)
			return node
		}

		accessor := ast.NewNode(ast.VIRTUAL_PROPERTY)
		node.AddChildLast(accessor)
		p.rewind(t)
		accessor.AddChildLast(p.parseIdentifier())

		if isMethod && p.peek().Kind == token.CONST {
			accessor.AddChildLast(p.parseToken(token.CONST))
		}
		if !isInterface {
			p.parseModifiers(accessor, methodAttribute...)
		}

		t = p.peek()
		switch {
		case !isInterface && t.Kind == token.START_BLOCK:
			accessor.AddChildLast(p.parseStatementBlock())
			if p.syntaxError {
				return node
			}
		case t.Kind == token.END_STATEMENT:
			p.next()
			accessor.UpdateSourcePosition(t.Pos, t.Length)
		default:
			if isInterface {
				p.errorExpectedKinds(t, token.END_STATEMENT)
			} else {
				p.errorExpectedKinds(t, token.END_STATEMENT, token.START_BLOCK)
			}
			return node
		}
	}
}
