package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

// parseType parses '[const] [scope] name [<types>] { [] | @ [const] }'.
func (p *Parser) parseType(allowConst, allowVariableType, allowAuto bool) *ast.Node {
	node := ast.NewNode(ast.DATA_TYPE)

	if allowConst && p.peek().Kind == token.CONST {
		node.AddChildLast(p.parseToken(token.CONST))
	}

	p.parseOptionalScope(node)

	base := p.peek()
	node.AddChildLast(p.parseDataType(allowVariableType, allowAuto))
	if p.syntaxError {
		return node
	}

	if p.isTemplateType(base) && p.peek().Kind == token.LESS {
		p.parseTemplTypeList(node, true)
		if p.syntaxError {
			return node
		}
	}

	for t := p.peek(); t.Kind == token.OPEN_BRACKET || t.Kind == token.HANDLE; t = p.peek() {
		if t.Kind == token.OPEN_BRACKET {
			node.AddChildLast(p.parseToken(token.OPEN_BRACKET))
			node.AddChildLast(p.parseToken(token.CLOSE_BRACKET))
			if p.syntaxError {
				return node
			}
			continue
		}
		node.AddChildLast(p.parseToken(token.HANDLE))
		if p.peek().Kind == token.CONST {
			node.AddChildLast(p.parseToken(token.CONST))
		}
	}

	return node
}

// parseTypeMod parses the reference and handle modifiers that may follow a
// type: '&' with 'in', 'out' or 'inout' for parameters, '+' and
// 'if_handle_then_const'. The node has no children when none are present.
func (p *Parser) parseTypeMod(isParam bool) *ast.Node {
	node := ast.NewNode(ast.DATA_TYPE)

	if p.peek().Kind == token.AMP {
		node.AddChildLast(p.parseToken(token.AMP))
		if isParam {
			switch p.peek().Kind {
			case token.IN, token.OUT, token.INOUT:
				node.AddChildLast(p.parseOneOf(token.IN, token.OUT, token.INOUT))
			}
		}
	}

	if p.peek().Kind == token.PLUS {
		node.AddChildLast(p.parseToken(token.PLUS))
	}

	if t := p.peek(); p.identifierIs(t, token.IF_HANDLE) {
		node.AddChildLast(p.parseToken(token.IDENTIFIER))
	}

	return node
}

func (p *Parser) parseDataType(allowVariableType, allowAuto bool) *ast.Node {
	node := ast.NewNode(ast.DATA_TYPE)

	t := p.next()
	if p.isDataType(t) || (allowVariableType && t.Kind == token.QUESTION) || (allowAuto && t.Kind == token.AUTO) {
		node.SetToken(t)
		return node
	}

	if t.Kind == token.AUTO {
		p.Error(errors.ErrorExpectedDataType, "auto is not allowed here", t)
	} else {
		p.errorExpected(errors.ErrorExpectedDataType, "data type", t)
	}
	return node
}

// parseOptionalScope parses a leading '::' and any 'name::' prefixes into a
// Scope node appended to node. A template type followed by '::' is part of
// the scope as well. Nothing is appended when there is no scope.
func (p *Parser) parseOptionalScope(node *ast.Node) {
	scope := ast.NewNode(ast.SCOPE)

	t1, t2 := p.next(), p.next()
	if t1.Kind == token.SCOPE {
		p.rewind(t1)
		scope.AddChildLast(p.parseToken(token.SCOPE))
		t1, t2 = p.next(), p.next()
	}

	for t1.Kind == token.IDENTIFIER && t2.Kind == token.SCOPE {
		p.rewind(t1)
		scope.AddChildLast(p.parseIdentifier())
		scope.AddChildLast(p.parseToken(token.SCOPE))
		t1, t2 = p.next(), p.next()
	}

	if t1.Kind == token.IDENTIFIER && t2.Kind == token.LESS && p.isTemplateType(t1) && p.templateScopeFollows(t1, t2) {
		p.rewind(t1)

		// built apart and merged only when the '::' confirms it
		tmpl := ast.NewNode(ast.SCOPE)
		tmpl.AddChildLast(p.parseIdentifier())
		if p.parseTemplTypeList(tmpl, false) {
			if t3 := p.peek(); t3.Kind == token.SCOPE {
				for c := tmpl.FirstChild; c != nil; c = tmpl.FirstChild {
					scope.AddChildLast(c)
				}
				scope.UpdateSourcePosition(tmpl.Pos, tmpl.Length)
				scope.AddChildLast(p.parseToken(token.SCOPE))
				node.AddChildLast(scope)
				return
			}
		}
	}

	p.rewind(t1)
	if scope.FirstChild != nil {
		node.AddChildLast(scope)
	}
}

// templateScopeFollows reports whether the template argument list starting
// at open is closed and followed by '::'. The cursor is left at open.
func (p *Parser) templateScopeFollows(t, open token.Token) bool {
	p.rewind(open)
	ok := p.checkTemplateType(t) && p.peek().Kind == token.SCOPE
	p.rewind(open)
	return ok
}

// parseTemplTypeList parses '<type, ...>' and appends the types to node.
// When required is false a failed list leaves node and the stream untouched
// and reports nothing.
func (p *Parser) parseTemplTypeList(node *ast.Node, required bool) bool {
	open := p.next()
	if open.Kind != token.LESS {
		if required {
			p.errorExpectedKinds(open, token.LESS)
		} else {
			p.rewind(open)
		}
		return false
	}

	list := ast.NewNode(ast.DATA_TYPE)
	list.UpdateSourcePosition(open.Pos, open.Length)
	for {
		if !required {
			if _, ok := p.IsType(); !ok {
				p.rewind(open)
				return false
			}
		}

		list.AddChildLast(p.parseType(true, false, false))
		if p.syntaxError {
			return false
		}

		t := p.next()
		if t.Kind == token.LIST_SEPARATOR {
			continue
		}

		if !p.closeAngle(t) {
			if required {
				p.errorExpectedKinds(t, token.GREATER)
			} else {
				p.rewind(open)
			}
			return false
		}
		list.UpdateSourcePosition(t.Pos, 1)
		break
	}

	for c := list.FirstChild; c != nil; c = list.FirstChild {
		node.AddChildLast(c)
	}
	node.UpdateSourcePosition(list.Pos, list.Length)
	return true
}
