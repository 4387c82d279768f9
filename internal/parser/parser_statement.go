package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

func (p *Parser) parseStatementBlock() *ast.Node {
	node := ast.NewNode(ast.STATEMENT_BLOCK)

	start := p.next()
	if start.Kind != token.START_BLOCK {
		p.errorExpectedKinds(start, token.START_BLOCK)
		return node
	}
	node.UpdateSourcePosition(start.Pos, start.Length)

	for {
		for !p.syntaxError {
			t := p.peek()
			switch {
			case t.Kind == token.END_BLOCK:
				p.next()
				node.UpdateSourcePosition(t.Pos, t.Length)
				return node
			case t.Kind == token.END:
				p.Error(errors.ErrorUnexpectedEOF, "unexpected end of file", t)
				p.Info("while parsing statement block", start)
				return node
			case p.IsVarDecl():
				node.AddChildLast(p.parseDeclaration(false))
			default:
				node.AddChildLast(p.parseStatement())
			}
		}

		// skip to the end of the statement, past a nested block, or up to
		// the '}' closing this one
		t := p.next()
		for t.Kind != token.END_STATEMENT && t.Kind != token.START_BLOCK &&
			t.Kind != token.END_BLOCK && t.Kind != token.END {
			t = p.next()
		}
		switch t.Kind {
		case token.START_BLOCK:
			p.skipBlock()
		case token.END_BLOCK:
			p.rewind(t)
		case token.END:
			p.Error(errors.ErrorUnexpectedEOF, "unexpected end of file", t)
			p.Info("while parsing statement block", start)
			return node
		}
		p.syntaxError = false
	}
}

// parseStatement parses one statement. A variable declaration is rejected
// here because declarations are only allowed directly in a block.
func (p *Parser) parseStatement() *ast.Node {
	t := p.peek()
	switch t.Kind {
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.START_BLOCK:
		return p.parseStatementBlock()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.TRY:
		return p.parseTryCatch()
	}

	if p.IsVarDecl() {
		p.Error(errors.ErrorUnexpectedVarDecl, "unexpected variable declaration", t)
		return nil
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	node := ast.NewNode(ast.EXPRESSION_STATEMENT)

	if t := p.peek(); t.Kind == token.END_STATEMENT {
		p.next()
		node.UpdateSourcePosition(t.Pos, t.Length)
		return node
	}

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}

	p.expect(node, token.END_STATEMENT)
	return node
}

func (p *Parser) parseIf() *ast.Node {
	node := ast.NewNode(ast.IF)
	if !p.expect(node, token.IF) || !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	if !p.expect(node, token.CLOSE_PAREN) {
		return node
	}

	node.AddChildLast(p.parseStatement())
	if p.syntaxError {
		return node
	}

	if p.peek().Kind == token.ELSE {
		p.next()
		node.AddChildLast(p.parseStatement())
	}
	return node
}

// for (init; condition; increment, ...) statement
func (p *Parser) parseFor() *ast.Node {
	node := ast.NewNode(ast.FOR)
	if !p.expect(node, token.FOR) || !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	if p.IsVarDecl() {
		node.AddChildLast(p.parseDeclaration(false))
	} else {
		node.AddChildLast(p.parseExpressionStatement())
	}
	if p.syntaxError {
		return node
	}

	node.AddChildLast(p.parseExpressionStatement())
	if p.syntaxError {
		return node
	}

	if t := p.peek(); t.Kind != token.CLOSE_PAREN {
		for {
			increment := ast.NewNode(ast.EXPRESSION_STATEMENT)
			node.AddChildLast(increment)
			increment.AddChildLast(p.parseAssignment())
			if p.syntaxError {
				return node
			}

			t = p.next()
			if t.Kind == token.LIST_SEPARATOR {
				continue
			}
			if t.Kind != token.CLOSE_PAREN {
				p.errorExpectedKinds(t, token.LIST_SEPARATOR, token.CLOSE_PAREN)
				return node
			}
			node.UpdateSourcePosition(t.Pos, t.Length)
			break
		}
	} else {
		p.next()
		node.UpdateSourcePosition(t.Pos, t.Length)
	}

	node.AddChildLast(p.parseStatement())
	return node
}

func (p *Parser) parseWhile() *ast.Node {
	node := ast.NewNode(ast.WHILE)
	if !p.expect(node, token.WHILE) || !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	if !p.expect(node, token.CLOSE_PAREN) {
		return node
	}

	node.AddChildLast(p.parseStatement())
	return node
}

func (p *Parser) parseDoWhile() *ast.Node {
	node := ast.NewNode(ast.DO_WHILE)
	if !p.expect(node, token.DO) {
		return node
	}

	node.AddChildLast(p.parseStatement())
	if p.syntaxError {
		return node
	}

	if !p.expect(node, token.WHILE) || !p.expect(node, token.OPEN_PAREN) {
		return node
	}
	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	if !p.expect(node, token.CLOSE_PAREN) {
		return node
	}
	p.expect(node, token.END_STATEMENT)
	return node
}

func (p *Parser) parseReturn() *ast.Node {
	node := ast.NewNode(ast.RETURN)
	if !p.expect(node, token.RETURN) {
		return node
	}

	if t := p.peek(); t.Kind == token.END_STATEMENT {
		p.next()
		node.UpdateSourcePosition(t.Pos, t.Length)
		return node
	}

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	p.expect(node, token.END_STATEMENT)
	return node
}

func (p *Parser) parseBreak() *ast.Node {
	node := ast.NewNode(ast.BREAK)
	if p.expect(node, token.BREAK) {
		p.expect(node, token.END_STATEMENT)
	}
	return node
}

func (p *Parser) parseContinue() *ast.Node {
	node := ast.NewNode(ast.CONTINUE)
	if p.expect(node, token.CONTINUE) {
		p.expect(node, token.END_STATEMENT)
	}
	return node
}

func (p *Parser) parseSwitch() *ast.Node {
	node := ast.NewNode(ast.SWITCH)
	if !p.expect(node, token.SWITCH) || !p.expect(node, token.OPEN_PAREN) {
		return node
	}

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	if !p.expect(node, token.CLOSE_PAREN) || !p.expect(node, token.START_BLOCK) {
		return node
	}

	for {
		t := p.peek()
		if t.Kind == token.END_BLOCK {
			break
		}
		if t.Kind != token.CASE && t.Kind != token.DEFAULT {
			p.errorExpectedKinds(t, token.CASE, token.DEFAULT)
			return node
		}
		node.AddChildLast(p.parseCase())
		if p.syntaxError {
			return node
		}
	}

	p.expect(node, token.END_BLOCK)
	return node
}

// parseCase parses 'case expr:' or 'default:' and the statements up to the
// next label. A closing 'break' belongs to the case.
func (p *Parser) parseCase() *ast.Node {
	node := ast.NewNode(ast.CASE)

	t := p.next()
	if t.Kind != token.CASE && t.Kind != token.DEFAULT {
		p.errorExpectedKinds(t, token.CASE, token.DEFAULT)
		return node
	}
	node.UpdateSourcePosition(t.Pos, t.Length)

	if t.Kind == token.CASE {
		node.AddChildLast(p.parseExpression())
		if p.syntaxError {
			return node
		}
	}

	if !p.expect(node, token.COLON) {
		return node
	}

	for t = p.peek(); !isCaseEnd(t.Kind); t = p.peek() {
		if p.IsVarDecl() {
			node.AddChildLast(p.parseDeclaration(false))
		} else {
			node.AddChildLast(p.parseStatement())
		}
		if p.syntaxError {
			return node
		}
	}

	if t.Kind == token.BREAK {
		node.AddChildLast(p.parseBreak())
	}
	return node
}

func isCaseEnd(k token.Kind) bool {
	switch k {
	case token.CASE, token.DEFAULT, token.END_BLOCK, token.BREAK, token.END:
		return true
	}
	return false
}

func (p *Parser) parseTryCatch() *ast.Node {
	node := ast.NewNode(ast.TRY_CATCH)
	if !p.expect(node, token.TRY) {
		return node
	}

	node.AddChildLast(p.parseStatementBlock())
	if p.syntaxError {
		return node
	}

	if !p.expect(node, token.CATCH) {
		return node
	}
	node.AddChildLast(p.parseStatementBlock())
	return node
}

// parseDeclaration parses 'type name [init], name [init], ...;'. Class
// properties may carry an access modifier; other declarations may use auto.
func (p *Parser) parseDeclaration(isClassProp bool) *ast.Node {
	node := ast.NewNode(ast.DECLARATION)

	if t := p.peek(); isClassProp && (t.Kind == token.PRIVATE || t.Kind == token.PROTECTED) {
		node.AddChildLast(p.parseOneOf(token.PRIVATE, token.PROTECTED))
	}

	node.AddChildLast(p.parseType(true, false, !isClassProp))
	if p.syntaxError {
		return node
	}

	for {
		node.AddChildLast(p.parseIdentifier())
		if p.syntaxError {
			return node
		}

		t := p.peek()
		switch t.Kind {
		case token.OPEN_PAREN:
			node.AddChildLast(p.parseArgList(true))
		case token.ASSIGN:
			p.next()
			if p.peek().Kind == token.START_BLOCK {
				node.AddChildLast(p.parseInitList())
			} else {
				node.AddChildLast(p.parseAssignment())
			}
		}
		if p.syntaxError {
			return node
		}

		t = p.next()
		switch t.Kind {
		case token.LIST_SEPARATOR:
			continue
		case token.END_STATEMENT:
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		default:
			p.errorExpectedKinds(t, token.LIST_SEPARATOR, token.END_STATEMENT)
			return node
		}
	}
}

// parseInitList parses '{a, {b, c}, , d}'. Empty slots are kept as
// Undefined placeholder nodes.
func (p *Parser) parseInitList() *ast.Node {
	node := ast.NewNode(ast.INIT_LIST)

	if !p.expect(node, token.START_BLOCK) {
		return node
	}

	if t := p.peek(); t.Kind == token.END_BLOCK {
		p.next()
		node.UpdateSourcePosition(t.Pos, t.Length)
		return node
	}

	for {
		t := p.peek()
		switch t.Kind {
		case token.LIST_SEPARATOR:
			p.next()
			node.AddChildLast(placeholder(t))
			if t2 := p.peek(); t2.Kind == token.END_BLOCK {
				p.next()
				node.AddChildLast(placeholder(t2))
				node.UpdateSourcePosition(t2.Pos, t2.Length)
				return node
			}
			continue
		case token.END_BLOCK:
			p.next()
			node.AddChildLast(placeholder(t))
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		case token.START_BLOCK:
			node.AddChildLast(p.parseInitList())
		default:
			node.AddChildLast(p.parseAssignment())
		}
		if p.syntaxError {
			return node
		}

		t = p.next()
		switch t.Kind {
		case token.LIST_SEPARATOR:
			continue
		case token.END_BLOCK:
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		default:
			p.errorExpectedKinds(t, token.END_BLOCK, token.LIST_SEPARATOR)
			return node
		}
	}
}

func placeholder(t token.Token) *ast.Node {
	n := ast.NewNode(ast.UNDEFINED)
	n.UpdateSourcePosition(t.Pos, 1)
	return n
}
