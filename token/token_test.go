package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordsAreLongestFirst(t *testing.T) {
	for c := 0; c < 256; c++ {
		list := Words(byte(c))
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, len(list[i-1].Spelling), len(list[i].Spelling),
				"Spellings for %q should be ordered longest first", rune(c))
		}
	}

	gt := Words('>')
	assert.Equal(t, ">>>=", gt[0].Spelling)
	assert.Equal(t, ">", gt[len(gt)-1].Spelling)
}

func TestDefinition(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{AND, "&&"},
		{NOT, "!"},
		{INT, "int"},
		{END_STATEMENT, ";"},
		{END, "<end of file>"},
		{IDENTIFIER, "<identifier>"},
		{UNRECOGNIZED, "<unrecognized token>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Definition(), "Definition of %s", tt.kind)
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, DOUBLE.IsPrimitiveType())
	assert.True(t, VOID.IsPrimitiveType())
	assert.False(t, AUTO.IsPrimitiveType())

	assert.True(t, TRUE.IsConstant())
	assert.True(t, BITS_CONSTANT.IsConstant())
	assert.False(t, NON_TERMINATED_STRING_CONSTANT.IsConstant())

	assert.True(t, HEREDOC_STRING_CONSTANT.IsString())
	assert.True(t, HANDLE.IsPreOperator())
	assert.True(t, OPEN_BRACKET.IsPostOperator())
	assert.True(t, NOT_IS.IsOperator())
	assert.False(t, ASSIGN.IsOperator())
	assert.True(t, SHIFT_RIGHT_ARITH_ASSIGN.IsAssignOperator())
	assert.False(t, EQUAL.IsAssignOperator())

	assert.True(t, CLASS.IsReserved())
	assert.False(t, IDENTIFIER.IsReserved())
	assert.True(t, MULTI_LINE_COMMENT.IsTrivia())
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, KEYWORD_CLASS, ClassOf(CLASS))
	assert.Equal(t, KEYWORD_CLASS, ClassOf(PLUS))
	assert.Equal(t, VALUE_CLASS, ClassOf(FLOAT_CONSTANT))
	assert.Equal(t, IDENTIFIER_CLASS, ClassOf(IDENTIFIER))
	assert.Equal(t, COMMENT_CLASS, ClassOf(ONE_LINE_COMMENT))
	assert.Equal(t, WHITESPACE_CLASS, ClassOf(WHITESPACE))
	assert.Equal(t, UNKNOWN_CLASS, ClassOf(UNRECOGNIZED))
}

func TestTokenText(t *testing.T) {
	src := "int x"
	tok := Token{Kind: IDENTIFIER, Pos: 4, Length: 1}
	assert.Equal(t, "x", tok.Text(src))
	assert.Equal(t, 5, tok.End())
	assert.Equal(t, "", Token{Pos: 4, Length: 5}.Text(src), "Out of range tokens have no text")
}

func TestKindNames(t *testing.T) {
	for k := UNRECOGNIZED; k < kindCount; k++ {
		assert.NotEqual(t, "Kind(?)", k.String(), "Kind %d should have a name", int(k))
	}
}
