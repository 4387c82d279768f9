package parser

import (
	"asparse/internal/ast"
	"asparse/internal/errors"
)

// ParseResult contains the tree and every diagnostic produced for one source
type ParseResult struct {
	Path   string
	Source string
	Root   *ast.Node
	errors.Diagnostics
}

// HasErrors reports whether the tree should be treated as unreliable.
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// Reporter returns an error reporter bound to this result's source.
func (pr *ParseResult) Reporter() *errors.ErrorReporter {
	return errors.NewErrorReporter(pr.Path, pr.Source)
}

// NodeAt returns the innermost node covering offset.
func (pr *ParseResult) NodeAt(offset int) *ast.Node {
	return ast.NodeAt(pr.Root, offset)
}

// Text returns the source text of n.
func (pr *ParseResult) Text(n *ast.Node) string {
	return n.Text(pr.Source)
}
