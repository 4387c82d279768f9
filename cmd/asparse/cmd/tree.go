package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"asparse/internal/ast"
	"asparse/internal/parser"
)

var treeFormat string

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Dump the syntax tree of a file",
	Long: `Dump the syntax tree of a file as an indented outline (text),
YAML or JSON. Diagnostics go to stderr so the tree can be piped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cfg.Output.Format
		if treeFormat != "" {
			format = treeFormat
		}

		r, err := parser.ParseFile(args[0], cfg.ParserOptions())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), r.Reporter().FormatAll(&r.Diagnostics))

		out := cmd.OutOrStdout()
		switch format {
		case "text":
			return ast.Fprint(out, r.Root, r.Source)
		case "yaml":
			data, err := ast.Export(r.Root, r.Source).YAML()
			if err != nil {
				return fmt.Errorf("failed to encode tree: %w", err)
			}
			_, err = out.Write(data)
			return err
		case "json":
			data, err := ast.Export(r.Root, r.Source).JSON()
			if err != nil {
				return fmt.Errorf("failed to encode tree: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}
		return fmt.Errorf("unknown output format %q", format)
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "", "output format: text, yaml or json (default from config)")
	rootCmd.AddCommand(treeCmd)
}
