package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"asparse/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse files and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := commonlog.GetLogger("asparse.cli")
		out := cmd.OutOrStdout()
		startTime := time.Now()

		failed := 0
		for _, path := range args {
			r, err := parser.ParseFile(path, cfg.ParserOptions())
			if err != nil {
				return err
			}
			log.Debugf("%s: %d errors, %d warnings, %d infos", path, len(r.Errors), len(r.Warnings), len(r.Infos))

			fmt.Fprint(out, r.Reporter().FormatAll(&r.Diagnostics))
			if r.HasErrors() {
				failed++
			}
		}

		duration := formatDuration(time.Since(startTime))
		if failed > 0 {
			color.New(color.FgRed).Fprintf(out, "Parsing failed for %d of %d file(s) after %s\n", failed, len(args), duration)
			return errDiagnostics
		}
		color.New(color.FgGreen).Fprintf(out, "Successfully parsed %d file(s) in %s\n", len(args), duration)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
