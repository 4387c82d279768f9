// Package ast holds the concrete syntax tree produced by the parser.
//
// Nodes form an intrusive tree: a parent links its first and last child and
// children link their siblings in both directions. A node's span always
// covers the spans of everything below it.
package ast

import (
	"fmt"

	"asparse/token"
)

type Node struct {
	Type NodeType

	// TokenKind is meaningful only when IsTerminal reports true.
	TokenKind token.Kind
	terminal  bool

	Pos    int
	Length int

	Parent     *Node
	Prev       *Node
	Next       *Node
	FirstChild *Node
	LastChild  *Node
}

func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

// End returns the offset just past the node's span.
func (n *Node) End() int {
	return n.Pos + n.Length
}

// IsTerminal reports whether a token has been bound to the node.
func (n *Node) IsTerminal() bool {
	return n.terminal
}

// SetToken binds tok to the node and grows the span to cover it.
func (n *Node) SetToken(tok token.Token) {
	n.TokenKind = tok.Kind
	n.terminal = true
	n.UpdateSourcePosition(tok.Pos, tok.Length)
}

// AddChildLast appends child to n's children. A child that already has a
// parent is detached from it first. Nil children are ignored so partial
// results can be appended without checks.
func (n *Node) AddChildLast(child *Node) {
	if child == nil {
		return
	}
	if child.Parent != nil {
		child.DisconnectParent()
	}

	child.Parent = n
	child.Prev = n.LastChild
	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child

	n.UpdateSourcePosition(child.Pos, child.Length)
}

// DisconnectParent unlinks n from its parent in constant time. The parent's
// span is left as it was.
func (n *Node) DisconnectParent() {
	p := n.Parent
	if p == nil {
		return
	}

	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		p.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		p.LastChild = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// UpdateSourcePosition grows the span to include [pos, pos+length) and
// carries the growth up to every ancestor. The empty span 0/0 is ignored.
func (n *Node) UpdateSourcePosition(pos, length int) {
	if pos == 0 && length == 0 {
		return
	}

	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Pos == 0 && cur.Length == 0 {
			cur.Pos, cur.Length = pos, length
			continue
		}
		if pos >= cur.Pos && pos+length <= cur.End() {
			return
		}
		end := max(cur.End(), pos+length)
		cur.Pos = min(cur.Pos, pos)
		cur.Length = end - cur.Pos
		pos, length = cur.Pos, cur.Length
	}
}

// Children returns the direct children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	for c := n.FirstChild; c != nil; c = c.Next {
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// FirstChildOfType returns the first direct child of type t, or nil.
func (n *Node) FirstChildOfType(t NodeType) *Node {
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// Text returns the source text covered by the node.
func (n *Node) Text(source string) string {
	if n.Pos < 0 || n.End() > len(source) {
		return ""
	}
	return source[n.Pos:n.End()]
}

// Name returns the text of the first direct Identifier child, which is the
// declared name for declarations and the callee for calls.
func (n *Node) Name(source string) string {
	if id := n.FirstChildOfType(IDENTIFIER); id != nil {
		return id.Text(source)
	}
	return ""
}

func (n *Node) String() string {
	if n.terminal {
		return fmt.Sprintf("%s %s [%d,%d)", n.Type, n.TokenKind, n.Pos, n.End())
	}
	return fmt.Sprintf("%s [%d,%d)", n.Type, n.Pos, n.End())
}
