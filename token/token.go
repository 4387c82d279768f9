// Package token SPDX-License-Identifier: Apache-2.0
//
// Package token defines the lexical vocabulary shared by the scanner, the
// parser and the syntax tree: token kinds, token values and the fixed table
// of operator and keyword spellings.
package token

// Kind classifies a token.
type Kind int

const (
	// Special tokens
	UNRECOGNIZED Kind = iota
	END

	// Trivia
	WHITESPACE
	ONE_LINE_COMMENT
	MULTI_LINE_COMMENT

	// Literals
	INT_CONSTANT
	FLOAT_CONSTANT
	DOUBLE_CONSTANT
	BITS_CONSTANT
	STRING_CONSTANT
	MULTILINE_STRING_CONSTANT
	HEREDOC_STRING_CONSTANT
	NON_TERMINATED_STRING_CONSTANT

	IDENTIFIER

	// Punctuation
	OPEN_PAREN
	CLOSE_PAREN
	OPEN_BRACKET
	CLOSE_BRACKET
	START_BLOCK
	END_BLOCK
	END_STATEMENT
	LIST_SEPARATOR
	COLON
	SCOPE
	DOT
	QUESTION
	HANDLE

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	STAR_STAR
	INC
	DEC
	NOT
	BIT_NOT
	AMP
	BIT_OR
	BIT_XOR
	SHIFT_LEFT
	SHIFT_RIGHT
	SHIFT_RIGHT_ARITH
	AND
	OR
	XOR
	EQUAL
	NOT_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	IS
	NOT_IS

	// Assignment operators
	ASSIGN
	ADD_ASSIGN
	SUB_ASSIGN
	MUL_ASSIGN
	DIV_ASSIGN
	MOD_ASSIGN
	POW_ASSIGN
	AND_ASSIGN
	OR_ASSIGN
	XOR_ASSIGN
	SHIFT_LEFT_ASSIGN
	SHIFT_RIGHT_ASSIGN
	SHIFT_RIGHT_ARITH_ASSIGN

	// Reserved keywords
	AUTO
	BOOL
	BREAK
	CASE
	CAST
	CATCH
	CLASS
	CONST
	CONTINUE
	DEFAULT
	DO
	DOUBLE
	ELSE
	ENUM
	FALSE
	FLOAT
	FOR
	FUNCDEF
	IF
	IMPORT
	IN
	INOUT
	INT
	INT8
	INT16
	INT64
	INTERFACE
	MIXIN
	NAMESPACE
	NULL
	OUT
	PRIVATE
	PROTECTED
	RETURN
	SWITCH
	TRUE
	TRY
	TYPEDEF
	UINT
	UINT8
	UINT16
	UINT64
	VOID
	WHILE

	kindCount
)

// Class is the informational lexical class of a token. The parser never
// branches on it.
type Class int

const (
	UNKNOWN_CLASS Class = iota
	KEYWORD_CLASS
	VALUE_CLASS
	IDENTIFIER_CLASS
	COMMENT_CLASS
	WHITESPACE_CLASS
)

// Token is a classified slice of source text. Tokens are values; two tokens
// are the same token when kind, position and length agree.
type Token struct {
	Kind   Kind
	Pos    int
	Length int
	Class  Class
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Pos + t.Length
}

// Text returns the source text covered by the token.
func (t Token) Text(source string) string {
	if t.Pos < 0 || t.End() > len(source) {
		return ""
	}
	return source[t.Pos:t.End()]
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool {
	return t.Kind.IsTrivia()
}

func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == ONE_LINE_COMMENT || k == MULTI_LINE_COMMENT
}

// IsReserved reports whether k is spelled as a reserved word.
func (k Kind) IsReserved() bool {
	return k >= AUTO && k < kindCount
}

// IsPrimitiveType reports whether k names a built-in type.
func (k Kind) IsPrimitiveType() bool {
	switch k {
	case VOID, INT, INT8, INT16, INT64, UINT, UINT8, UINT16, UINT64, FLOAT, DOUBLE, BOOL:
		return true
	}
	return false
}

// IsConstant reports whether k is a literal value accepted by the grammar.
func (k Kind) IsConstant() bool {
	switch k {
	case INT_CONSTANT, FLOAT_CONSTANT, DOUBLE_CONSTANT, BITS_CONSTANT,
		STRING_CONSTANT, MULTILINE_STRING_CONSTANT, HEREDOC_STRING_CONSTANT,
		TRUE, FALSE, NULL:
		return true
	}
	return false
}

func (k Kind) IsString() bool {
	return k == STRING_CONSTANT || k == MULTILINE_STRING_CONSTANT || k == HEREDOC_STRING_CONSTANT
}

func (k Kind) IsPreOperator() bool {
	switch k {
	case MINUS, PLUS, NOT, INC, DEC, BIT_NOT, HANDLE:
		return true
	}
	return false
}

func (k Kind) IsPostOperator() bool {
	switch k {
	case INC, DEC, DOT, OPEN_BRACKET, OPEN_PAREN:
		return true
	}
	return false
}

// IsOperator reports whether k is a binary operator.
func (k Kind) IsOperator() bool {
	switch k {
	case PLUS, MINUS, STAR, SLASH, PERCENT, STAR_STAR,
		AND, OR, XOR,
		EQUAL, NOT_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		AMP, BIT_OR, BIT_XOR, SHIFT_LEFT, SHIFT_RIGHT, SHIFT_RIGHT_ARITH,
		IS, NOT_IS:
		return true
	}
	return false
}

func (k Kind) IsAssignOperator() bool {
	return k >= ASSIGN && k <= SHIFT_RIGHT_ARITH_ASSIGN
}

// ClassOf returns the lexical class the scanner assigns to k.
func ClassOf(k Kind) Class {
	switch {
	case k == WHITESPACE:
		return WHITESPACE_CLASS
	case k == ONE_LINE_COMMENT || k == MULTI_LINE_COMMENT:
		return COMMENT_CLASS
	case k >= INT_CONSTANT && k <= NON_TERMINATED_STRING_CONSTANT:
		return VALUE_CLASS
	case k == IDENTIFIER:
		return IDENTIFIER_CLASS
	case k >= OPEN_PAREN && k < kindCount:
		return KEYWORD_CLASS
	}
	return UNKNOWN_CLASS
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindNames = [...]string{
	UNRECOGNIZED:                   "UNRECOGNIZED",
	END:                            "END",
	WHITESPACE:                     "WHITESPACE",
	ONE_LINE_COMMENT:               "ONE_LINE_COMMENT",
	MULTI_LINE_COMMENT:             "MULTI_LINE_COMMENT",
	INT_CONSTANT:                   "INT_CONSTANT",
	FLOAT_CONSTANT:                 "FLOAT_CONSTANT",
	DOUBLE_CONSTANT:                "DOUBLE_CONSTANT",
	BITS_CONSTANT:                  "BITS_CONSTANT",
	STRING_CONSTANT:                "STRING_CONSTANT",
	MULTILINE_STRING_CONSTANT:      "MULTILINE_STRING_CONSTANT",
	HEREDOC_STRING_CONSTANT:        "HEREDOC_STRING_CONSTANT",
	NON_TERMINATED_STRING_CONSTANT: "NON_TERMINATED_STRING_CONSTANT",
	IDENTIFIER:                     "IDENTIFIER",
	OPEN_PAREN:                     "OPEN_PAREN",
	CLOSE_PAREN:                    "CLOSE_PAREN",
	OPEN_BRACKET:                   "OPEN_BRACKET",
	CLOSE_BRACKET:                  "CLOSE_BRACKET",
	START_BLOCK:                    "START_BLOCK",
	END_BLOCK:                      "END_BLOCK",
	END_STATEMENT:                  "END_STATEMENT",
	LIST_SEPARATOR:                 "LIST_SEPARATOR",
	COLON:                          "COLON",
	SCOPE:                          "SCOPE",
	DOT:                            "DOT",
	QUESTION:                       "QUESTION",
	HANDLE:                         "HANDLE",
	PLUS:                           "PLUS",
	MINUS:                          "MINUS",
	STAR:                           "STAR",
	SLASH:                          "SLASH",
	PERCENT:                        "PERCENT",
	STAR_STAR:                      "STAR_STAR",
	INC:                            "INC",
	DEC:                            "DEC",
	NOT:                            "NOT",
	BIT_NOT:                        "BIT_NOT",
	AMP:                            "AMP",
	BIT_OR:                         "BIT_OR",
	BIT_XOR:                        "BIT_XOR",
	SHIFT_LEFT:                     "SHIFT_LEFT",
	SHIFT_RIGHT:                    "SHIFT_RIGHT",
	SHIFT_RIGHT_ARITH:              "SHIFT_RIGHT_ARITH",
	AND:                            "AND",
	OR:                             "OR",
	XOR:                            "XOR",
	EQUAL:                          "EQUAL",
	NOT_EQUAL:                      "NOT_EQUAL",
	LESS:                           "LESS",
	LESS_EQUAL:                     "LESS_EQUAL",
	GREATER:                        "GREATER",
	GREATER_EQUAL:                  "GREATER_EQUAL",
	IS:                             "IS",
	NOT_IS:                         "NOT_IS",
	ASSIGN:                         "ASSIGN",
	ADD_ASSIGN:                     "ADD_ASSIGN",
	SUB_ASSIGN:                     "SUB_ASSIGN",
	MUL_ASSIGN:                     "MUL_ASSIGN",
	DIV_ASSIGN:                     "DIV_ASSIGN",
	MOD_ASSIGN:                     "MOD_ASSIGN",
	POW_ASSIGN:                     "POW_ASSIGN",
	AND_ASSIGN:                     "AND_ASSIGN",
	OR_ASSIGN:                      "OR_ASSIGN",
	XOR_ASSIGN:                     "XOR_ASSIGN",
	SHIFT_LEFT_ASSIGN:              "SHIFT_LEFT_ASSIGN",
	SHIFT_RIGHT_ASSIGN:             "SHIFT_RIGHT_ASSIGN",
	SHIFT_RIGHT_ARITH_ASSIGN:       "SHIFT_RIGHT_ARITH_ASSIGN",
	AUTO:                           "AUTO",
	BOOL:                           "BOOL",
	BREAK:                          "BREAK",
	CASE:                           "CASE",
	CAST:                           "CAST",
	CATCH:                          "CATCH",
	CLASS:                          "CLASS",
	CONST:                          "CONST",
	CONTINUE:                       "CONTINUE",
	DEFAULT:                        "DEFAULT",
	DO:                             "DO",
	DOUBLE:                         "DOUBLE",
	ELSE:                           "ELSE",
	ENUM:                           "ENUM",
	FALSE:                          "FALSE",
	FLOAT:                          "FLOAT",
	FOR:                            "FOR",
	FUNCDEF:                        "FUNCDEF",
	IF:                             "IF",
	IMPORT:                         "IMPORT",
	IN:                             "IN",
	INOUT:                          "INOUT",
	INT:                            "INT",
	INT8:                           "INT8",
	INT16:                          "INT16",
	INT64:                          "INT64",
	INTERFACE:                      "INTERFACE",
	MIXIN:                          "MIXIN",
	NAMESPACE:                      "NAMESPACE",
	NULL:                           "NULL",
	OUT:                            "OUT",
	PRIVATE:                        "PRIVATE",
	PROTECTED:                      "PROTECTED",
	RETURN:                         "RETURN",
	SWITCH:                         "SWITCH",
	TRUE:                           "TRUE",
	TRY:                            "TRY",
	TYPEDEF:                        "TYPEDEF",
	UINT:                           "UINT",
	UINT8:                          "UINT8",
	UINT16:                         "UINT16",
	UINT64:                         "UINT64",
	VOID:                           "VOID",
	WHILE:                          "WHILE",
}
