package token

import (
	"sort"
	"sync"
)

// Word is one fixed spelling recognised by the scanner.
type Word struct {
	Spelling string
	Kind     Kind
}

// The first spelling listed for a kind is its canonical definition.
var words = []Word{
	{"+", PLUS},
	{"+=", ADD_ASSIGN},
	{"++", INC},
	{"-", MINUS},
	{"-=", SUB_ASSIGN},
	{"--", DEC},
	{"*", STAR},
	{"*=", MUL_ASSIGN},
	{"/", SLASH},
	{"/=", DIV_ASSIGN},
	{"%", PERCENT},
	{"%=", MOD_ASSIGN},
	{"**", STAR_STAR},
	{"**=", POW_ASSIGN},
	{"=", ASSIGN},
	{"==", EQUAL},
	{"!=", NOT_EQUAL},
	{"<", LESS},
	{"<=", LESS_EQUAL},
	{">", GREATER},
	{">=", GREATER_EQUAL},
	{"(", OPEN_PAREN},
	{")", CLOSE_PAREN},
	{"&", AMP},
	{"&=", AND_ASSIGN},
	{"|", BIT_OR},
	{"|=", OR_ASSIGN},
	{"~", BIT_NOT},
	{"^", BIT_XOR},
	{"^=", XOR_ASSIGN},
	{"<<", SHIFT_LEFT},
	{"<<=", SHIFT_LEFT_ASSIGN},
	{">>", SHIFT_RIGHT},
	{">>=", SHIFT_RIGHT_ASSIGN},
	{">>>", SHIFT_RIGHT_ARITH},
	{">>>=", SHIFT_RIGHT_ARITH_ASSIGN},
	{"@", HANDLE},
	{"&&", AND},
	{"||", OR},
	{"^^", XOR},
	{"!", NOT},
	{"!is", NOT_IS},
	{"?", QUESTION},
	{":", COLON},
	{"::", SCOPE},
	{",", LIST_SEPARATOR},
	{";", END_STATEMENT},
	{"{", START_BLOCK},
	{"}", END_BLOCK},
	{"[", OPEN_BRACKET},
	{"]", CLOSE_BRACKET},
	{".", DOT},
	{"and", AND},
	{"auto", AUTO},
	{"bool", BOOL},
	{"break", BREAK},
	{"case", CASE},
	{"cast", CAST},
	{"catch", CATCH},
	{"class", CLASS},
	{"const", CONST},
	{"continue", CONTINUE},
	{"default", DEFAULT},
	{"do", DO},
	{"double", DOUBLE},
	{"else", ELSE},
	{"enum", ENUM},
	{"false", FALSE},
	{"float", FLOAT},
	{"for", FOR},
	{"funcdef", FUNCDEF},
	{"if", IF},
	{"import", IMPORT},
	{"in", IN},
	{"inout", INOUT},
	{"int", INT},
	{"int8", INT8},
	{"int16", INT16},
	{"int32", INT},
	{"int64", INT64},
	{"interface", INTERFACE},
	{"is", IS},
	{"mixin", MIXIN},
	{"namespace", NAMESPACE},
	{"not", NOT},
	{"null", NULL},
	{"or", OR},
	{"out", OUT},
	{"private", PRIVATE},
	{"protected", PROTECTED},
	{"return", RETURN},
	{"switch", SWITCH},
	{"true", TRUE},
	{"try", TRY},
	{"typedef", TYPEDEF},
	{"uint", UINT},
	{"uint8", UINT8},
	{"uint16", UINT16},
	{"uint32", UINT},
	{"uint64", UINT64},
	{"void", VOID},
	{"while", WHILE},
	{"xor", XOR},
}

// Contextual words. They lex as identifiers and only carry meaning in
// specific grammar positions.
const (
	SHARED    = "shared"
	EXTERNAL  = "external"
	ABSTRACT  = "abstract"
	FINAL     = "final"
	OVERRIDE  = "override"
	EXPLICIT  = "explicit"
	PROPERTY  = "property"
	DELETE    = "delete"
	GET       = "get"
	SET       = "set"
	FROM      = "from"
	FUNCTION  = "function"
	IF_HANDLE = "if_handle_then_const"
	SUPER     = "super"
	THIS      = "this"
)

// ContextualWords lists the words that only have meaning in specific
// grammar positions.
func ContextualWords() []string {
	return []string{
		SHARED, EXTERNAL, ABSTRACT, FINAL, OVERRIDE, EXPLICIT, PROPERTY,
		DELETE, GET, SET, FROM, FUNCTION, IF_HANDLE, SUPER, THIS,
	}
}

var (
	tableOnce   sync.Once
	table       [256][]Word
	definitions map[Kind]string
)

func buildTable() {
	definitions = make(map[Kind]string, len(words))
	for _, w := range words {
		c := w.Spelling[0]
		table[c] = append(table[c], w)
		if _, ok := definitions[w.Kind]; !ok {
			definitions[w.Kind] = w.Spelling
		}
	}
	for i := range table {
		sort.SliceStable(table[i], func(a, b int) bool {
			return len(table[i][a].Spelling) > len(table[i][b].Spelling)
		})
	}
}

// Words returns the spellings starting with c, longest first. The returned
// slice is shared and must not be modified.
func Words(c byte) []Word {
	tableOnce.Do(buildTable)
	return table[c]
}

// Definition returns the display form of k used in diagnostics.
func (k Kind) Definition() string {
	tableOnce.Do(buildTable)
	if s, ok := definitions[k]; ok {
		return s
	}
	switch k {
	case END:
		return "<end of file>"
	case WHITESPACE:
		return "<white space>"
	case ONE_LINE_COMMENT, MULTI_LINE_COMMENT:
		return "<comment>"
	case INT_CONSTANT:
		return "<integer constant>"
	case FLOAT_CONSTANT:
		return "<float constant>"
	case DOUBLE_CONSTANT:
		return "<double constant>"
	case BITS_CONSTANT:
		return "<bits constant>"
	case STRING_CONSTANT, MULTILINE_STRING_CONSTANT, HEREDOC_STRING_CONSTANT:
		return "<string constant>"
	case NON_TERMINATED_STRING_CONSTANT:
		return "<non-terminated string constant>"
	case IDENTIFIER:
		return "<identifier>"
	}
	return "<unrecognized token>"
}
