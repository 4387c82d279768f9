// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"asparse/internal/ast"
	"asparse/internal/parser"
	"asparse/token"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Start reads script fragments from in, parses each one and writes its
// diagnostics and syntax tree to out. A fragment continues over several
// lines while it has unclosed braces, parentheses or brackets. It returns
// when in is exhausted or on ":quit".
func Start(in io.Reader, out io.Writer, opts parser.Options) error {
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}

		if !scanner.Scan() {
			fmt.Fprintln(out)
			if len(pending) > 0 {
				evaluate(out, strings.Join(pending, "\n"), opts)
			}
			return scanner.Err()
		}

		line := scanner.Text()
		if len(pending) == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case ":quit", ":q":
				return nil
			}
		}

		pending = append(pending, line)
		src := strings.Join(pending, "\n")
		if openGroups(src) > 0 {
			continue
		}

		evaluate(out, src, opts)
		pending = pending[:0]
	}
}

func evaluate(out io.Writer, src string, opts parser.Options) {
	r := parser.ParseSource("<repl>", src, opts)

	fmt.Fprint(out, r.Reporter().FormatAll(&r.Diagnostics))
	if err := ast.Fprint(out, r.Root, src); err != nil {
		fmt.Fprintf(out, "failed to print tree: %v\n", err)
	}
}

// openGroups counts the brackets still open at the end of src.
func openGroups(src string) int {
	depth := 0
	for _, t := range parser.NewScanner(src).ScanTokens(false) {
		switch t.Kind {
		case token.START_BLOCK, token.OPEN_PAREN, token.OPEN_BRACKET:
			depth++
		case token.END_BLOCK, token.CLOSE_PAREN, token.CLOSE_BRACKET:
			depth--
		}
	}
	return depth
}
