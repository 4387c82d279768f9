package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"asparse/grammar"
	"asparse/internal/parser"
	"asparse/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query SELECTOR FILE...",
	Short: "Print the tree nodes matching a selector",
	Long: `Print the tree nodes matching a selector, e.g.

  asparse query 'Class[Player] > Function' player.as
  asparse query 'StatementBlock >> FunctionCall:0' main.as`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := query.Compile(args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), grammar.FormatError(args[0], err))
			return errDiagnostics
		}

		out := cmd.OutOrStdout()
		for _, path := range args[1:] {
			r, err := parser.ParseFile(path, cfg.ParserOptions())
			if err != nil {
				return err
			}

			reporter := r.Reporter()
			for _, n := range q.Match(r.Root, r.Source) {
				pos := reporter.PositionOf(n.Pos)
				fmt.Fprintf(out, "%s:%d:%d %s %s\n", path, pos.Line, pos.Column, n.Type, strconv.Quote(excerpt(r.Text(n))))
			}
		}
		return nil
	},
}

// excerpt keeps the first line of text, shortened to a readable width.
func excerpt(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " ..."
	}
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return text
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
