package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"asparse/internal/config"
)

// errDiagnostics marks a run whose problems were already reported.
var errDiagnostics = errors.New("diagnostics reported")

var (
	cfgFile   string
	verbosity int
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "asparse",
	Short: "AngelScript parser toolchain",
	Long: `asparse parses AngelScript sources into a concrete syntax tree.

Commands:
  parse    - check files and report diagnostics
  tokens   - list the tokens of a file
  tree     - dump the syntax tree as text, YAML or JSON
  query    - select tree nodes with a selector expression
  repl     - parse fragments interactively`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./asparse.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if verbosity > 0 {
		c.Log.Verbosity = verbosity
	}

	var logPath *string
	if c.Log.File != "" {
		logPath = &c.Log.File
	}
	commonlog.Configure(c.Log.Verbosity, logPath)

	color.NoColor = !c.UseColor(!color.NoColor)
	cfg = c
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
