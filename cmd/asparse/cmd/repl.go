package cmd

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"asparse/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse fragments interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "there"
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome to the asparse REPL, %s! Type :quit to leave.\n", name)

		return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.ParserOptions())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
