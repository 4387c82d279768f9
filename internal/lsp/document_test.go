package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestPositionsCountUTF16Units(t *testing.T) {
	// 'é' is two bytes and one unit, the clef is four bytes and two units
	src := "aé𝄞x\nb"
	starts := lineStarts(src)

	assert.Equal(t, protocol.Position{Line: 0, Character: 4}, positionIn(src, starts, 7))
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, positionIn(src, starts, 9))
	assert.Equal(t, protocol.Position{Line: 1, Character: 1}, positionIn(src, starts, 100), "Offsets clamp to the end")

	assert.Equal(t, 7, offsetIn(src, starts, protocol.Position{Line: 0, Character: 4}))
	assert.Equal(t, 8, offsetIn(src, starts, protocol.Position{Line: 0, Character: 99}), "Characters clamp to the line")
	assert.Equal(t, len(src), offsetIn(src, starts, protocol.Position{Line: 5}))
}

func TestEncodeSemanticTokens(t *testing.T) {
	data := encodeSemanticTokens([]SemanticToken{
		{Line: 1, StartChar: 4, Length: 3, TokenType: 1},
		{Line: 1, StartChar: 10, Length: 2, TokenType: 2, TokenModifiers: 1},
		{Line: 3, StartChar: 2, Length: 1, TokenType: 0},
	})
	assert.Equal(t, []uint32{
		1, 4, 3, 1, 0,
		0, 6, 2, 2, 1,
		2, 2, 1, 0, 0,
	}, data)
	assert.Empty(t, encodeSemanticTokens(nil))
}
