package parser

import "asparse/token"

// The predicates below only look ahead. Each one leaves the stream exactly
// where it found it and never creates nodes.

var (
	declModifiers   = []string{token.SHARED, token.EXTERNAL, token.ABSTRACT, token.FINAL}
	funcModifiers   = []string{token.SHARED, token.EXTERNAL}
	methodAttribute = []string{token.FINAL, token.OVERRIDE, token.EXPLICIT, token.PROPERTY, token.DELETE}
)

// IsType reports whether a type starts at the cursor and returns the token
// that follows it.
func (p *Parser) IsType() (token.Token, bool) {
	start := p.next()
	t1 := start
	if t1.Kind == token.CONST {
		t1 = p.next()
	}

	if t1.Kind != token.AUTO {
		if t1.Kind == token.SCOPE {
			t1 = p.next()
		}
		t2 := p.next()
		for t1.Kind == token.IDENTIFIER {
			if t2.Kind == token.SCOPE {
				t1, t2 = p.next(), p.next()
				continue
			}
			if t2.Kind == token.LESS {
				// template types may be used as scopes
				p.rewind(t2)
				if p.checkTemplateType(t1) {
					if t3 := p.next(); t3.Kind == token.SCOPE {
						t1, t2 = p.next(), p.next()
						continue
					}
				}
			}
			break
		}
		p.rewind(t2)
	}

	if !t1.Kind.IsPrimitiveType() && t1.Kind != token.IDENTIFIER && t1.Kind != token.AUTO {
		p.rewind(start)
		return token.Token{}, false
	}
	if !p.checkTemplateType(t1) {
		p.rewind(start)
		return token.Token{}, false
	}

	// handles, references and array brackets may be interleaved
	t2 := p.next()
	for t2.Kind == token.HANDLE || t2.Kind == token.AMP || t2.Kind == token.OPEN_BRACKET {
		switch t2.Kind {
		case token.HANDLE:
			if t2 = p.next(); t2.Kind == token.CONST {
				t2 = p.next()
			}
		case token.AMP:
			t2 = p.next()
			if t2.Kind == token.IN || t2.Kind == token.OUT || t2.Kind == token.INOUT {
				t2 = p.next()
			}
		case token.OPEN_BRACKET:
			if t2 = p.next(); t2.Kind != token.CLOSE_BRACKET {
				p.rewind(start)
				return token.Token{}, false
			}
			t2 = p.next()
		}
	}

	p.rewind(start)
	return t2, true
}

// checkTemplateType walks over the template argument list following t when
// t names a template type. The cursor must be just after t. On success the
// cursor is left after the closing '>'.
func (p *Parser) checkTemplateType(t token.Token) bool {
	if !p.isTemplateType(t) {
		return true
	}

	t1 := p.next()
	if t1.Kind != token.LESS {
		p.rewind(t1)
		return true
	}

	for {
		t1 = p.next()
		if t1.Kind == token.CONST {
			t1 = p.next()
		}
		if t1.Kind == token.SCOPE {
			t1 = p.next()
		}
		t2 := p.next()
		for t1.Kind == token.IDENTIFIER && t2.Kind == token.SCOPE {
			t1, t2 = p.next(), p.next()
		}
		p.rewind(t2)

		if !p.isDataType(t1) {
			return false
		}
		if !p.checkTemplateType(t1) {
			return false
		}

		t1 = p.next()
		for t1.Kind == token.HANDLE || t1.Kind == token.OPEN_BRACKET {
			if t1.Kind == token.OPEN_BRACKET {
				if t1 = p.next(); t1.Kind != token.CLOSE_BRACKET {
					return false
				}
			} else if t1 = p.peek(); t1.Kind == token.CONST {
				p.next()
			}
			t1 = p.next()
		}

		if t1.Kind != token.LIST_SEPARATOR {
			break
		}
	}

	return p.closeAngle(t1)
}

// closeAngle accepts any token starting with '>' as the end of a template
// list. Longer tokens such as '>>' are split so only the first character is
// consumed.
func (p *Parser) closeAngle(t token.Token) bool {
	if t.Length == 0 || p.source[t.Pos] != '>' {
		return false
	}
	if t.Length > 1 {
		p.ts.SetPosition(t.Pos + 1)
	}
	return true
}

// IsVarDecl reports whether a variable declaration starts at the cursor.
func (p *Parser) IsVarDecl() bool {
	start := p.peek()

	if t := p.next(); t.Kind != token.PRIVATE && t.Kind != token.PROTECTED {
		p.rewind(t)
	}

	after, ok := p.IsType()
	if !ok {
		p.rewind(start)
		return false
	}
	p.rewind(after)

	if t := p.next(); t.Kind != token.IDENTIFIER {
		p.rewind(start)
		return false
	}

	t := p.next()
	switch t.Kind {
	case token.END_STATEMENT, token.ASSIGN, token.LIST_SEPARATOR:
		p.rewind(start)
		return true
	case token.OPEN_PAREN:
		// A parenthesis may open a constructor argument list or the
		// parameter list of a function. Look past the matching ')'.
		nest := 0
		for t.Kind != token.END {
			if t.Kind == token.OPEN_PAREN {
				nest++
			} else if t.Kind == token.CLOSE_PAREN {
				if nest--; nest == 0 {
					break
				}
			}
			t = p.next()
		}
		if t.Kind == token.END {
			p.rewind(start)
			return false
		}
		t = p.next()
		p.rewind(start)
		return t.Kind != token.START_BLOCK && t.Kind != token.IDENTIFIER && t.Kind != token.END
	}

	p.rewind(start)
	return false
}

// IsVirtualPropertyDecl reports whether a property with get/set accessors
// starts at the cursor.
func (p *Parser) IsVirtualPropertyDecl() bool {
	start := p.peek()

	if t := p.next(); t.Kind != token.PRIVATE && t.Kind != token.PROTECTED {
		p.rewind(t)
	}

	after, ok := p.IsType()
	if !ok {
		p.rewind(start)
		return false
	}
	p.rewind(after)

	if t := p.next(); t.Kind != token.IDENTIFIER {
		p.rewind(start)
		return false
	}

	t := p.next()
	p.rewind(start)
	return t.Kind == token.START_BLOCK
}

// IsFuncDecl reports whether a function declaration starts at the cursor.
// For methods, constructors and destructors are recognised as well.
func (p *Parser) IsFuncDecl(isMethod bool) bool {
	start := p.peek()

	if isMethod {
		if t := p.next(); t.Kind != token.PRIVATE && t.Kind != token.PROTECTED {
			p.rewind(t)
		}
		t1, t2 := p.peek2()
		if (t1.Kind == token.IDENTIFIER && t2.Kind == token.OPEN_PAREN) || t1.Kind == token.BIT_NOT {
			p.rewind(start)
			return true
		}
	}

	external := false
	t := p.next()
	for !isMethod && p.isOneOfWords(t, funcModifiers...) {
		external = external || p.text(t) == token.EXTERNAL
		t = p.next()
	}
	p.rewind(t)

	after, ok := p.IsType()
	if !ok {
		p.rewind(start)
		return false
	}
	p.rewind(after)

	t = p.next()
	if t.Kind != token.IDENTIFIER {
		p.rewind(start)
		return false
	}

	if t = p.next(); t.Kind != token.OPEN_PAREN {
		p.rewind(start)
		return false
	}

	// default arguments may nest parentheses
	nest := 0
	t = p.next()
	for (nest > 0 || t.Kind != token.CLOSE_PAREN) && t.Kind != token.END {
		if t.Kind == token.OPEN_PAREN {
			nest++
		} else if t.Kind == token.CLOSE_PAREN {
			nest--
		}
		t = p.next()
	}
	if t.Kind == token.END {
		p.rewind(start)
		return false
	}

	if isMethod {
		if t = p.next(); t.Kind != token.CONST {
			p.rewind(t)
		}
	}
	for {
		t = p.next()
		if !p.isOneOfWords(t, methodAttribute...) {
			break
		}
	}

	p.rewind(start)
	return t.Kind == token.START_BLOCK || (external && t.Kind == token.END_STATEMENT)
}

// IsFunctionCall reports whether a possibly scoped identifier followed by
// '(' starts at the cursor.
func (p *Parser) IsFunctionCall() bool {
	start := p.next()
	t1 := start
	if t1.Kind == token.SCOPE {
		t1 = p.next()
	}
	t2 := p.next()
	for t1.Kind == token.IDENTIFIER && t2.Kind == token.SCOPE {
		t1, t2 = p.next(), p.next()
	}

	p.rewind(start)
	return t1.Kind == token.IDENTIFIER && t2.Kind == token.OPEN_PAREN
}

// IsLambda reports whether an anonymous function 'function(...) {' starts
// at the cursor.
func (p *Parser) IsLambda() bool {
	start := p.next()
	isLambda := false
	if p.identifierIs(start, token.FUNCTION) {
		t := p.next()
		if t.Kind == token.OPEN_PAREN {
			for t.Kind != token.CLOSE_PAREN && t.Kind != token.END {
				t = p.next()
			}
			isLambda = p.next().Kind == token.START_BLOCK
		}
	}
	p.rewind(start)
	return isLambda
}

// declarationKind skips any leading declaration modifiers and returns the
// kind of the token after them.
func (p *Parser) declarationKind() token.Kind {
	start := p.next()
	t := start
	for p.isOneOfWords(t, declModifiers...) {
		t = p.next()
	}
	p.rewind(start)
	return t.Kind
}
