package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

// parseAssignment parses 'condition [assignop assignment]'. Assignment is
// right associative.
func (p *Parser) parseAssignment() *ast.Node {
	node := ast.NewNode(ast.ASSIGNMENT)

	node.AddChildLast(p.parseCondition())
	if p.syntaxError {
		return node
	}

	if t := p.peek(); t.Kind.IsAssignOperator() {
		p.next()
		op := ast.NewNode(ast.EXPR_OPERATOR)
		op.SetToken(t)
		node.AddChildLast(op)
		node.AddChildLast(p.parseAssignment())
	}
	return node
}

// parseCondition parses 'expression [? assignment : assignment]'.
func (p *Parser) parseCondition() *ast.Node {
	node := ast.NewNode(ast.CONDITION)

	node.AddChildLast(p.parseExpression())
	if p.syntaxError {
		return node
	}

	if p.peek().Kind != token.QUESTION {
		return node
	}
	p.next()

	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	if !p.expect(node, token.COLON) {
		return node
	}
	node.AddChildLast(p.parseAssignment())
	return node
}

// parseExpression parses a flat 'term (op term)*' sequence. Operator
// precedence is left to later passes.
func (p *Parser) parseExpression() *ast.Node {
	node := ast.NewNode(ast.EXPRESSION)

	node.AddChildLast(p.parseExprTerm())
	if p.syntaxError {
		return node
	}

	for t := p.peek(); t.Kind.IsOperator(); t = p.peek() {
		p.next()
		op := ast.NewNode(ast.EXPR_OPERATOR)
		op.SetToken(t)
		node.AddChildLast(op)

		node.AddChildLast(p.parseExprTerm())
		if p.syntaxError {
			return node
		}
	}
	return node
}

func (p *Parser) parseExprTerm() *ast.Node {
	node := ast.NewNode(ast.EXPR_TERM)

	// 'type = {...}' is an anonymous initialization list
	start := p.peek()
	if after, ok := p.IsType(); ok && after.Kind == token.ASSIGN {
		p.rewind(after)
		p.next()
		isInitList := p.next().Kind == token.START_BLOCK
		p.rewind(start)

		if isInitList {
			node.AddChildLast(p.parseType(false, false, false))
			if p.syntaxError {
				return node
			}
			p.next()
			node.AddChildLast(p.parseInitList())
			return node
		}
	}

	for t := p.peek(); t.Kind.IsPreOperator(); t = p.peek() {
		p.next()
		op := ast.NewNode(ast.EXPR_PRE_OP)
		op.SetToken(t)
		node.AddChildLast(op)
	}

	node.AddChildLast(p.parseExprValue())
	if p.syntaxError {
		return node
	}

	for t := p.peek(); t.Kind.IsPostOperator(); t = p.peek() {
		node.AddChildLast(p.parseExprPostOp())
		if p.syntaxError {
			return node
		}
	}
	return node
}

// parseExprPostOp parses '++', '--', '.member', '.method(...)', '[args]'
// and '(args)'. The node holds the operator token.
func (p *Parser) parseExprPostOp() *ast.Node {
	node := ast.NewNode(ast.EXPR_POST_OP)

	t := p.next()
	if !t.Kind.IsPostOperator() {
		p.errorExpectedKinds(t, token.INC, token.DEC, token.DOT, token.OPEN_BRACKET, token.OPEN_PAREN)
		return node
	}
	node.SetToken(t)

	switch t.Kind {
	case token.DOT:
		if t1, t2 := p.peek2(); t1.Kind == token.IDENTIFIER && t2.Kind == token.OPEN_PAREN {
			node.AddChildLast(p.parseFunctionCall())
		} else {
			node.AddChildLast(p.parseIdentifier())
		}
	case token.OPEN_BRACKET:
		node.AddChildLast(p.parseArgList(false))
		if p.syntaxError {
			return node
		}
		p.expect(node, token.CLOSE_BRACKET)
	case token.OPEN_PAREN:
		p.rewind(t)
		node.AddChildLast(p.parseArgList(true))
	}
	return node
}

func (p *Parser) parseExprValue() *ast.Node {
	node := ast.NewNode(ast.EXPR_VALUE)

	t1 := p.peek()
	switch {
	case t1.Kind == token.VOID:
		node.AddChildLast(p.parseToken(token.VOID))
	case t1.Kind.IsPrimitiveType():
		node.AddChildLast(p.parseConstructCall())
	case t1.Kind == token.IDENTIFIER || t1.Kind == token.SCOPE:
		if p.IsLambda() {
			node.AddChildLast(p.parseLambda())
			break
		}
		switch {
		case p.isConstructCall():
			node.AddChildLast(p.parseConstructCall())
		case p.IsFunctionCall():
			node.AddChildLast(p.parseFunctionCall())
		default:
			node.AddChildLast(p.parseVariableAccess())
		}
	case t1.Kind == token.CAST:
		node.AddChildLast(p.parseCast())
	case t1.Kind.IsConstant():
		node.AddChildLast(p.parseConstant())
	case t1.Kind == token.OPEN_PAREN:
		p.next()
		node.UpdateSourcePosition(t1.Pos, t1.Length)
		node.AddChildLast(p.parseAssignment())
		if p.syntaxError {
			return node
		}
		p.expect(node, token.CLOSE_PAREN)
	case t1.Kind == token.NON_TERMINATED_STRING_CONSTANT:
		p.Error(errors.ErrorNonTerminatedString, "non-terminated string literal", t1)
	default:
		p.errorExpected(errors.ErrorExpectedExpression, "expression value", t1)
	}
	return node
}

// isConstructCall reports whether the scoped identifier at the cursor names
// a type being constructed: 'T[](...)' or a template instance 'array<T>(...)'.
func (p *Parser) isConstructCall() bool {
	start := p.next()
	t := start
	if t.Kind == token.SCOPE {
		t = p.next()
	}
	t2 := p.next()
	for t.Kind == token.IDENTIFIER && t2.Kind == token.SCOPE {
		t, t2 = p.next(), p.next()
	}

	is := false
	switch {
	case t2.Kind == token.OPEN_BRACKET:
		is = p.next().Kind == token.CLOSE_BRACKET
	case t2.Kind == token.LESS:
		is = p.isTemplateType(t)
	}
	p.rewind(start)
	return is
}

// parseArgList parses 'expr, name: expr, ...'. With withParen the list is
// enclosed in '(' and ')'; otherwise it ends at the first token that does
// not continue it.
func (p *Parser) parseArgList(withParen bool) *ast.Node {
	node := ast.NewNode(ast.ARG_LIST)

	if withParen {
		if !p.expect(node, token.OPEN_PAREN) {
			return node
		}
		if t := p.peek(); t.Kind == token.CLOSE_PAREN {
			p.next()
			node.UpdateSourcePosition(t.Pos, t.Length)
			return node
		}
	}

	for {
		t1, t2 := p.peek2()
		switch {
		case t1.Kind == token.IDENTIFIER && t2.Kind == token.COLON:
			node.AddChildLast(p.parseNamedArgument())
		case t1.Kind == token.IDENTIFIER && t2.Kind == token.ASSIGN && p.opts.NamedArgs != NamedArgsReject:
			if p.opts.NamedArgs == NamedArgsWarn {
				p.Warning(errors.WarningDeprecatedNamedArg, "deprecated named argument syntax, use 'name: value'", t2)
			}
			node.AddChildLast(p.parseNamedArgument())
		default:
			node.AddChildLast(p.parseAssignment())
		}
		if p.syntaxError {
			return node
		}

		t := p.next()
		if t.Kind == token.LIST_SEPARATOR {
			continue
		}
		if !withParen {
			p.rewind(t)
			return node
		}
		if t.Kind != token.CLOSE_PAREN {
			p.errorExpectedKinds(t, token.CLOSE_PAREN, token.LIST_SEPARATOR)
			return node
		}
		node.UpdateSourcePosition(t.Pos, t.Length)
		return node
	}
}

// parseNamedArgument parses 'name: value' or the older 'name = value'.
func (p *Parser) parseNamedArgument() *ast.Node {
	node := ast.NewNode(ast.NAMED_ARGUMENT)

	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}
	sep := p.next()
	node.UpdateSourcePosition(sep.Pos, sep.Length)

	node.AddChildLast(p.parseAssignment())
	return node
}

func (p *Parser) parseFunctionCall() *ast.Node {
	node := ast.NewNode(ast.FUNCTION_CALL)

	p.parseOptionalScope(node)
	node.AddChildLast(p.parseIdentifier())
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseArgList(true))
	return node
}

func (p *Parser) parseVariableAccess() *ast.Node {
	node := ast.NewNode(ast.VARIABLE_ACCESS)

	p.parseOptionalScope(node)
	node.AddChildLast(p.parseIdentifier())
	return node
}

func (p *Parser) parseConstructCall() *ast.Node {
	node := ast.NewNode(ast.CONSTRUCT_CALL)

	node.AddChildLast(p.parseType(false, false, false))
	if p.syntaxError {
		return node
	}
	node.AddChildLast(p.parseArgList(true))
	return node
}

// cast<type>(expr)
func (p *Parser) parseCast() *ast.Node {
	node := ast.NewNode(ast.CAST)

	if !p.expect(node, token.CAST) || !p.expect(node, token.LESS) {
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

	t := p.next()
	if !p.closeAngle(t) {
		p.errorExpectedKinds(t, token.GREATER)
		return node
	}
	node.UpdateSourcePosition(t.Pos, 1)

	if !p.expect(node, token.OPEN_PAREN) {
		return node
	}
	node.AddChildLast(p.parseAssignment())
	if p.syntaxError {
		return node
	}
	p.expect(node, token.CLOSE_PAREN)
	return node
}

// parseConstant parses a literal. Adjacent string literals are kept as
// children of one Constant node so they can be concatenated later.
func (p *Parser) parseConstant() *ast.Node {
	node := ast.NewNode(ast.CONSTANT)

	t := p.next()
	if !t.Kind.IsConstant() {
		p.errorExpected(errors.ErrorExpectedConstant, "constant", t)
		return node
	}

	if t.Kind.IsString() {
		p.rewind(t)
		for p.peek().Kind.IsString() {
			node.AddChildLast(p.parseStringConstant())
		}
		return node
	}

	node.SetToken(t)
	return node
}

func (p *Parser) parseStringConstant() *ast.Node {
	node := ast.NewNode(ast.CONSTANT)

	t := p.next()
	if !t.Kind.IsString() {
		p.errorExpected(errors.ErrorExpectedString, "string", t)
		return node
	}
	node.SetToken(t)
	return node
}
