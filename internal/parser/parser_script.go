package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

// parseScript parses top level declarations until END, or until an
// unmatched '}' when inBlock is set.
func (p *Parser) parseScript(inBlock bool) *ast.Node {
	node := ast.NewNode(ast.SCRIPT)

	for {
		for !p.syntaxError {
			t1 := p.peek()

			switch {
			case t1.Kind == token.IMPORT:
				node.AddChildLast(p.parseImport())
			case t1.Kind == token.TYPEDEF:
				node.AddChildLast(p.parseTypedef())
			case t1.Kind == token.MIXIN:
				node.AddChildLast(p.parseMixin())
			case t1.Kind == token.NAMESPACE:
				node.AddChildLast(p.parseNamespace())
			case t1.Kind == token.END_STATEMENT:
				// stray semicolon
				p.next()
			case t1.Kind == token.END:
				return node
			case inBlock && t1.Kind == token.END_BLOCK:
				return node
			default:
				switch p.declarationKind() {
				case token.ENUM:
					node.AddChildLast(p.parseEnum())
				case token.CLASS:
					node.AddChildLast(p.parseClass())
				case token.INTERFACE:
					node.AddChildLast(p.parseInterface())
				case token.FUNCDEF:
					node.AddChildLast(p.parseFuncDef())
				default:
					p.parseGlobal(node, t1)
				}
			}
		}

		// skip to the next ';' or past the next balanced block
		t := p.next()
		for t.Kind != token.END_STATEMENT && t.Kind != token.START_BLOCK && t.Kind != token.END {
			t = p.next()
		}
		if t.Kind == token.START_BLOCK {
			p.skipBlock()
		}
		p.syntaxError = false
	}
}

func (p *Parser) parseGlobal(node *ast.Node, t1 token.Token) {
	if t1.Kind != token.CONST && t1.Kind != token.SCOPE && t1.Kind != token.AUTO && !p.isDataType(t1) {
		p.errorUnexpected(t1)
		return
	}

	switch {
	case p.IsFuncDecl(false):
		node.AddChildLast(p.parseFunction(false))
	case p.IsVirtualPropertyDecl():
		node.AddChildLast(p.parseVirtualPropertyDecl(false, false))
	case p.IsVarDecl():
		node.AddChildLast(p.parseDeclaration(false))
	default:
		p.errorUnexpected(t1)
	}
}

// import void f(int) from "module";
func (p *Parser) parseImport() *ast.Node {
	node := ast.NewNode(ast.IMPORT)
	if !p.expect(node, token.IMPORT) {
		return node
	}

	fn := ast.NewNode(ast.FUNCTION)
	node.AddChildLast(fn)
	fn.AddChildLast(p.parseType(true, false, false))
	if p.syntaxError {
		return node
	}
	fn.AddChildLast(p.parseTypeMod(false))
	if p.syntaxError {
		return node
	}
	fn.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}
	fn.AddChildLast(p.parseParameterList())
	if p.syntaxError {
		return node
	}
	if p.peek().Kind == token.CONST {
		fn.AddChildLast(p.parseToken(token.CONST))
	}
	p.parseModifiers(fn, methodAttribute...)

	t := p.next()
	if !p.identifierIs(t, token.FROM) {
		p.errorExpectedWords(t, token.FROM)
		return node
	}
	node.UpdateSourcePosition(t.Pos, t.Length)

	t = p.next()
	if !t.Kind.IsString() {
		p.errorExpected(errors.ErrorExpectedString, "string", t)
		return node
	}
	module := ast.NewNode(ast.CONSTANT)
	module.SetToken(t)
	node.AddChildLast(module)

	p.expect(node, token.END_STATEMENT)
	return node
}

// namespace A::B { ... }
func (p *Parser) parseNamespace() *ast.Node {
	node := ast.NewNode(ast.NAMESPACE)
	if !p.expect(node, token.NAMESPACE) {
		return node
	}

	node.AddChildLast(p.parseIdentifier())
	for !p.syntaxError && p.peek().Kind == token.SCOPE {
		p.next()
		node.AddChildLast(p.parseIdentifier())
	}
	if p.syntaxError {
		return node
	}

	start := p.next()
	if start.Kind != token.START_BLOCK {
		p.errorExpectedKinds(start, token.START_BLOCK)
		return node
	}
	node.UpdateSourcePosition(start.Pos, start.Length)

	node.AddChildLast(p.parseScript(true))

	if !p.syntaxError {
		t := p.next()
		if t.Kind == token.END_BLOCK {
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		}
		if t.Kind == token.END {
			p.Error(errors.ErrorUnexpectedEOF, "unexpected end of file", t)
		} else {
			p.errorExpectedKinds(t, token.END_BLOCK)
		}
		p.Info("while parsing namespace", start)
	}
	return node
}

// enum E { A, B = 2, C }
func (p *Parser) parseEnum() *ast.Node {
	node := ast.NewNode(ast.ENUM)

	p.parseModifiers(node, funcModifiers...)
	if !p.expect(node, token.ENUM) {
		return node
	}

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}

	t := p.next()
	if t.Kind == token.END_STATEMENT {
		// forward declaration of an external shared enum
		p.rewind(t)
		node.AddChildLast(p.parseToken(token.END_STATEMENT))
		return node
	}
	if t.Kind != token.START_BLOCK {
		p.errorExpectedKinds(t, token.START_BLOCK)
		return node
	}
	node.UpdateSourcePosition(t.Pos, t.Length)

	for {
		t = p.next()
		if t.Kind == token.END_BLOCK {
			p.rewind(t)
			break
		}
		if t.Kind != token.IDENTIFIER {
			p.errorExpected(errors.ErrorExpectedIdentifier, "identifier", t)
			return node
		}
		value := ast.NewNode(ast.IDENTIFIER)
		value.SetToken(t)
		node.AddChildLast(value)

		t = p.next()
		if t.Kind == token.ASSIGN {
			node.AddChildLast(p.parseExpression())
			if p.syntaxError {
				return node
			}
			t = p.next()
		}
		if t.Kind != token.LIST_SEPARATOR {
			p.rewind(t)
			break
		}
	}

	p.expect(node, token.END_BLOCK)
	return node
}

// typedef double real;
func (p *Parser) parseTypedef() *ast.Node {
	node := ast.NewNode(ast.TYPEDEF)
	if !p.expect(node, token.TYPEDEF) {
		return node
	}

	t := p.next()
	if !t.Kind.IsPrimitiveType() || t.Kind == token.VOID {
		p.errorExpected(errors.ErrorExpectedDataType, "primitive type", t)
		return node
	}
	base := ast.NewNode(ast.DATA_TYPE)
	base.SetToken(t)
	node.AddChildLast(base)

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}

	p.expect(node, token.END_STATEMENT)
	return node
}

// funcdef bool Callback(int);
func (p *Parser) parseFuncDef() *ast.Node {
	node := ast.NewNode(ast.FUNC_DEF)

	p.parseModifiers(node, funcModifiers...)
	if !p.expect(node, token.FUNCDEF) {
		return node
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
	node.AddChildLast(p.parseParameterList())
	if p.syntaxError {
		return node
	}

	p.expect(node, token.END_STATEMENT)
	return node
}

// mixin class M { ... }
func (p *Parser) parseMixin() *ast.Node {
	node := ast.NewNode(ast.MIXIN)
	if !p.expect(node, token.MIXIN) {
		return node
	}
	if t := p.peek(); t.Kind != token.CLASS {
		p.errorExpectedKinds(t, token.CLASS)
		return node
	}
	node.AddChildLast(p.parseClass())
	return node
}
