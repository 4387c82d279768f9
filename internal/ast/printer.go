package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented outline of the tree rooted at n. Terminal nodes
// are followed by their token kind and quoted source text.
func Fprint(w io.Writer, n *Node, source string) error {
	var err error
	depth := map[*Node]int{}
	Walk(n, func(x *Node) bool {
		if err != nil {
			return false
		}
		d := 0
		if x.Parent != nil && x != n {
			d = depth[x.Parent] + 1
		}
		depth[x] = d

		line := fmt.Sprintf("%s%s %d:%d", strings.Repeat("  ", d), x.Type, x.Pos, x.Length)
		if x.IsTerminal() {
			line += fmt.Sprintf(" %s %s", x.TokenKind, strconv.Quote(x.Text(source)))
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// Dump returns the outline written by Fprint.
func Dump(n *Node, source string) string {
	var b strings.Builder
	_ = Fprint(&b, n, source)
	return b.String()
}
