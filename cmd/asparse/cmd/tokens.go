package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"asparse/internal/parser"
)

var includeTrivia bool

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "List the tokens of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		src := string(source)
		out := cmd.OutOrStdout()
		for _, t := range parser.NewScanner(src).ScanTokens(includeTrivia) {
			fmt.Fprintf(out, "%d:%d %s %q\n", t.Pos, t.Length, t.Kind, t.Text(src))
		}
		return nil
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments")
	rootCmd.AddCommand(tokensCmd)
}
