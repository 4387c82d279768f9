package parser

import "fmt"

// NamedArgMode selects how the legacy 'name = value' argument spelling is
// treated.
type NamedArgMode int

const (
	NamedArgsAccept NamedArgMode = iota
	NamedArgsWarn
	NamedArgsReject
)

func (m NamedArgMode) String() string {
	switch m {
	case NamedArgsWarn:
		return "warn"
	case NamedArgsReject:
		return "reject"
	}
	return "accept"
}

func ParseNamedArgMode(s string) (NamedArgMode, error) {
	switch s {
	case "", "accept":
		return NamedArgsAccept, nil
	case "warn":
		return NamedArgsWarn, nil
	case "reject":
		return NamedArgsReject, nil
	}
	return NamedArgsAccept, fmt.Errorf("unknown named argument mode %q", s)
}

type Options struct {
	// TemplateTypes lists the type names that take a '<' template argument
	// list where an expression could otherwise read it as less-than.
	TemplateTypes []string

	NamedArgs NamedArgMode
}

func DefaultOptions() Options {
	return Options{
		TemplateTypes: []string{"array"},
		NamedArgs:     NamedArgsAccept,
	}
}
