package parser

import (
	"fmt"
	"os"

	"asparse/internal/ast"
	"asparse/internal/errors"
)

// ParseSource parses source with the given options.
func ParseSource(path string, source string, opts Options) *ParseResult {
	p := NewParser(path, source, opts)
	root := p.ParseScript()
	return &ParseResult{
		Path:        path,
		Source:      source,
		Root:        root,
		Diagnostics: p.diags,
	}
}

func ParseFile(path string, opts Options) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source), opts), nil
}

// Parse parses source with default options and returns the root node with
// the error, warning and info lists.
func Parse(source string) (*ast.Node, []errors.Diagnostic, []errors.Diagnostic, []errors.Diagnostic) {
	r := ParseSource("", source, DefaultOptions())
	return r.Root, r.Errors, r.Warnings, r.Infos
}
