package ast

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		Walk(c, fn)
	}
}

// Collect returns every node below and including n that satisfies pred, in
// pre-order.
func Collect(n *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(x *Node) bool {
		if pred(x) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// CountNodes returns the size of the subtree rooted at n.
func CountNodes(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}

// NodeAt returns the innermost node whose span contains offset.
func NodeAt(root *Node, offset int) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if offset < n.Pos || offset >= n.End() {
			return false
		}
		found = n
		return true
	})
	return found
}
