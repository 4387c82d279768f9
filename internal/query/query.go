// Package query evaluates selector expressions against syntax trees.
package query

import (
	"fmt"
	"sort"

	"asparse/grammar"
	"asparse/internal/ast"
)

type step struct {
	descendant bool
	any        bool
	typ        ast.NodeType
	name       *string
	index      int
}

// Query is a compiled selector.
type Query struct {
	sel   *grammar.Selector
	steps []step
}

// Compile parses src and resolves its node type names.
func Compile(src string) (*Query, error) {
	sel, err := grammar.ParseSelector(src)
	if err != nil {
		return nil, err
	}

	q := &Query{sel: sel}
	first, err := compileStep(sel.First, true)
	if err != nil {
		return nil, err
	}
	q.steps = append(q.steps, first)

	for _, l := range sel.Rest {
		s, err := compileStep(l.Step, l.Axis == grammar.AxisDescendant)
		if err != nil {
			return nil, err
		}
		q.steps = append(q.steps, s)
	}
	return q, nil
}

func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func compileStep(gs *grammar.Step, descendant bool) (step, error) {
	s := step{descendant: descendant, name: gs.Name, index: -1}
	if gs.Index != nil {
		s.index = *gs.Index
	}

	if gs.Type == "*" {
		s.any = true
		return s, nil
	}
	typ, ok := ast.LookupNodeType(gs.Type)
	if !ok {
		return s, fmt.Errorf("unknown node type %q at column %d", gs.Type, gs.Pos.Column)
	}
	s.typ = typ
	return s, nil
}

func (q *Query) String() string {
	return q.sel.String()
}

// Match returns the nodes below root selected by the query, in pre-order
// and without duplicates. The first step may match root itself.
func (q *Query) Match(root *ast.Node, source string) []*ast.Node {
	if root == nil {
		return nil
	}

	current := q.steps[0].filter(descendantsOrSelf(root), source)
	for _, s := range q.steps[1:] {
		var next []*ast.Node
		for _, ctx := range current {
			var candidates []*ast.Node
			if s.descendant {
				candidates = descendantsOrSelf(ctx)[1:]
			} else {
				candidates = ctx.Children()
			}
			next = append(next, s.filter(candidates, source)...)
		}
		current = next
	}

	return preOrder(root, current)
}

func (s step) filter(nodes []*ast.Node, source string) []*ast.Node {
	var out []*ast.Node
	for _, n := range nodes {
		if !s.any && n.Type != s.typ {
			continue
		}
		if s.name != nil && !hasName(n, *s.name, source) {
			continue
		}
		out = append(out, n)
	}

	if s.index >= 0 {
		if s.index >= len(out) {
			return nil
		}
		return out[s.index : s.index+1]
	}
	return out
}

// hasName reports whether n's text is name or n has a direct Identifier
// child spelled name.
func hasName(n *ast.Node, name, source string) bool {
	if n.Text(source) == name {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Type == ast.IDENTIFIER && c.Text(source) == name {
			return true
		}
	}
	return false
}

func descendantsOrSelf(n *ast.Node) []*ast.Node {
	return ast.Collect(n, func(*ast.Node) bool { return true })
}

func preOrder(root *ast.Node, nodes []*ast.Node) []*ast.Node {
	if len(nodes) == 0 {
		return nil
	}

	order := make(map[*ast.Node]int)
	i := 0
	ast.Walk(root, func(n *ast.Node) bool {
		order[n] = i
		i++
		return true
	})

	seen := make(map[*ast.Node]bool, len(nodes))
	out := make([]*ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Slice(out, func(a, b int) bool { return order[out[a]] < order[out[b]] })
	return out
}
