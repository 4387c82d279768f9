package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"asparse/internal/ast"
)

// documentSymbols builds the outline of a document: namespaces, types and
// their members, global functions and variables.
func (d *document) documentSymbols() []protocol.DocumentSymbol {
	if d.result.Root == nil {
		return []protocol.DocumentSymbol{}
	}
	return d.symbolsIn(d.result.Root, false)
}

func (d *document) symbolsIn(parent *ast.Node, inType bool) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	source := d.result.Source

	for n := parent.FirstChild; n != nil; n = n.Next {
		switch n.Type {
		case ast.NAMESPACE:
			var parts []string
			for c := n.FirstChild; c != nil; c = c.Next {
				if c.Type == ast.IDENTIFIER {
					parts = append(parts, c.Text(source))
				}
			}
			sym, ok := d.symbol(n, strings.Join(parts, "::"), protocol.SymbolKindNamespace, "")
			if !ok {
				continue
			}
			if body := n.FirstChildOfType(ast.SCRIPT); body != nil {
				sym.Children = d.symbolsIn(body, false)
			}
			symbols = append(symbols, sym)

		case ast.MIXIN:
			symbols = append(symbols, d.symbolsIn(n, false)...)

		case ast.CLASS, ast.INTERFACE:
			kind := protocol.SymbolKindClass
			if n.Type == ast.INTERFACE {
				kind = protocol.SymbolKindInterface
			}
			if sym, ok := d.symbol(n, n.Name(source), kind, ""); ok {
				sym.Children = d.symbolsIn(n, true)
				symbols = append(symbols, sym)
			}

		case ast.ENUM:
			sym, ok := d.symbol(n, n.Name(source), protocol.SymbolKindEnum, "")
			if !ok {
				continue
			}
			sym.Children = []protocol.DocumentSymbol{}
			name := n.FirstChildOfType(ast.IDENTIFIER)
			for c := name.Next; c != nil; c = c.Next {
				if c.Type != ast.IDENTIFIER {
					continue
				}
				r := d.rangeOf(c.Pos, c.End())
				sym.Children = append(sym.Children, protocol.DocumentSymbol{
					Name:           c.Text(source),
					Kind:           protocol.SymbolKindEnumMember,
					Range:          r,
					SelectionRange: r,
				})
			}
			symbols = append(symbols, sym)

		case ast.FUNCTION:
			kind := protocol.SymbolKindFunction
			if inType {
				kind = protocol.SymbolKindMethod
			}
			if sym, ok := d.symbol(n, n.Name(source), kind, typeText(n, source)); ok {
				symbols = append(symbols, sym)
			}

		case ast.FUNC_DEF:
			if sym, ok := d.symbol(n, n.Name(source), protocol.SymbolKindFunction, "funcdef"); ok {
				symbols = append(symbols, sym)
			}

		case ast.TYPEDEF:
			if sym, ok := d.symbol(n, n.Name(source), protocol.SymbolKindTypeParameter, "typedef"); ok {
				symbols = append(symbols, sym)
			}

		case ast.IMPORT:
			if sym, ok := d.symbol(n, n.Name(source), protocol.SymbolKindFunction, "import"); ok {
				symbols = append(symbols, sym)
			}

		case ast.VIRTUAL_PROPERTY:
			if sym, ok := d.symbol(n, n.Name(source), protocol.SymbolKindProperty, typeText(n, source)); ok {
				symbols = append(symbols, sym)
			}

		case ast.DECLARATION:
			kind := protocol.SymbolKindVariable
			if inType {
				kind = protocol.SymbolKindField
			}
			detail := typeText(n, source)
			for c := n.FirstChild; c != nil; c = c.Next {
				if c.Type != ast.IDENTIFIER || c.Length == 0 {
					continue
				}
				symbols = append(symbols, protocol.DocumentSymbol{
					Name:           c.Text(source),
					Detail:         ptrString(detail),
					Kind:           kind,
					Range:          d.rangeOf(n.Pos, n.End()),
					SelectionRange: d.rangeOf(c.Pos, c.End()),
				})
			}
		}
	}

	return symbols
}

// symbol creates the entry for a named node. Nodes whose name failed to
// parse are left out of the outline.
func (d *document) symbol(n *ast.Node, name string, kind protocol.SymbolKind, detail string) (protocol.DocumentSymbol, bool) {
	if name == "" {
		return protocol.DocumentSymbol{}, false
	}

	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          d.rangeOf(n.Pos, n.End()),
		SelectionRange: d.rangeOf(n.Pos, n.End()),
	}
	if id := n.FirstChildOfType(ast.IDENTIFIER); id != nil {
		sym.SelectionRange = d.rangeOf(id.Pos, id.End())
	}
	if detail != "" {
		sym.Detail = ptrString(detail)
	}
	return sym, true
}

func typeText(n *ast.Node, source string) string {
	if t := n.FirstChildOfType(ast.DATA_TYPE); t != nil {
		return t.Text(source)
	}
	return ""
}
