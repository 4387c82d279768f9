package parser

import "asparse/token"

// TokenStream is a cursor over source text that lexes on demand. Backtracking
// is a matter of moving the cursor: RewindTo a token previously returned by
// Consume and the same token is produced again.
type TokenStream struct {
	source string
	pos    int

	// last token returned by Consume, reused when the cursor is moved back
	// onto it
	last   token.Token
	cached bool
}

func NewTokenStream(source string) *TokenStream {
	return &TokenStream{source: source}
}

func (ts *TokenStream) Source() string {
	return ts.source
}

// Position returns the cursor offset.
func (ts *TokenStream) Position() int {
	return ts.pos
}

// Consume returns the next significant token, skipping whitespace and
// comments. At end of input it keeps returning END.
func (ts *TokenStream) Consume() token.Token {
	if ts.cached && ts.pos == ts.last.Pos {
		ts.pos = ts.last.End()
		return ts.last
	}

	for {
		tok := Classify(ts.source, ts.pos)
		ts.pos = tok.End()
		if tok.IsTrivia() {
			continue
		}
		ts.last, ts.cached = tok, true
		return tok
	}
}

// Peek returns the next significant token without moving the cursor.
func (ts *TokenStream) Peek() token.Token {
	tok := ts.Consume()
	ts.RewindTo(tok)
	return tok
}

func (ts *TokenStream) RewindTo(tok token.Token) {
	ts.pos = tok.Pos
	if ts.last != tok {
		ts.cached = false
	}
}

// SetPosition moves the cursor to an arbitrary offset. The parser uses it
// to split a multi-character '>' token.
func (ts *TokenStream) SetPosition(offset int) {
	if offset > len(ts.source) {
		offset = len(ts.source)
	}
	ts.pos = offset
	ts.cached = false
}
