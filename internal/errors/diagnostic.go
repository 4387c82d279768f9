package errors

import (
	"fmt"
	"sort"

	"asparse/token"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// Diagnostic is one message produced while parsing, anchored at the token
// that triggered it.
type Diagnostic struct {
	Level   ErrorLevel
	Code    string
	Message string
	Token   token.Token
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s] at %d: %s", d.Level, d.Code, d.Token.Pos, d.Message)
}

// Diagnostics holds the three ordered lists a parse produces.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (ds *Diagnostics) AddError(code, message string, tok token.Token) {
	ds.Errors = append(ds.Errors, Diagnostic{Level: Error, Code: code, Message: message, Token: tok})
}

func (ds *Diagnostics) AddWarning(code, message string, tok token.Token) {
	ds.Warnings = append(ds.Warnings, Diagnostic{Level: Warning, Code: code, Message: message, Token: tok})
}

func (ds *Diagnostics) AddInfo(code, message string, tok token.Token) {
	ds.Infos = append(ds.Infos, Diagnostic{Level: Note, Code: code, Message: message, Token: tok})
}

// All returns errors, warnings and infos merged in source order. Entries at
// the same offset keep list order: errors, then warnings, then infos.
func (ds *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(ds.Errors)+len(ds.Warnings)+len(ds.Infos))
	all = append(all, ds.Errors...)
	all = append(all, ds.Warnings...)
	all = append(all, ds.Infos...)
	sortByPosition(all)
	return all
}

func sortByPosition(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Token.Pos < ds[j].Token.Pos
	})
}

// DescribeToken renders tok the way diagnostics refer to it, e.g.
// "identifier 'x'" or "reserved keyword 'class'".
func DescribeToken(tok token.Token, source string) string {
	text := tok.Text(source)
	switch {
	case tok.Kind == token.END:
		return "end of file"
	case tok.Kind == token.IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", text)
	case tok.Kind == token.NON_TERMINATED_STRING_CONSTANT:
		return "non-terminated string"
	case tok.Kind.IsConstant() && !tok.Kind.IsReserved():
		return fmt.Sprintf("constant %s", truncate(text, 24))
	case tok.Kind.IsReserved():
		return fmt.Sprintf("reserved keyword '%s'", text)
	}
	return fmt.Sprintf("'%s'", truncate(text, 24))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
