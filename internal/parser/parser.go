package parser

import (
	"github.com/tliron/commonlog"

	"asparse/internal/ast"
	"asparse/internal/errors"
)

// Parser builds a syntax tree for one source buffer. A Parser is used for a
// single parse and is not safe for concurrent use.
type Parser struct {
	ts        *TokenStream
	source    string
	filename  string
	opts      Options
	templates map[string]bool

	diags       errors.Diagnostics
	syntaxError bool
}

func NewParser(filename, source string, opts Options) *Parser {
	templates := make(map[string]bool, len(opts.TemplateTypes))
	for _, name := range opts.TemplateTypes {
		templates[name] = true
	}
	return &Parser{
		ts:        NewTokenStream(source),
		source:    source,
		filename:  filename,
		opts:      opts,
		templates: templates,
	}
}

// ParseScript parses the whole buffer. The returned Script node is never nil,
// whatever errors were found.
func (p *Parser) ParseScript() *ast.Node {
	root := p.parseScript(false)
	commonlog.GetLogger("asparse.parser").Debugf("parsed %s: %d nodes, %d errors, %d warnings",
		p.filename, ast.CountNodes(root), len(p.diags.Errors), len(p.diags.Warnings))
	return root
}

func (p *Parser) Diagnostics() *errors.Diagnostics {
	return &p.diags
}
