package offlinegate

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagRoots    []string
	flagExts     []string
	flagExclude  []string
	flagJSON     bool
	flagSARIF    bool
	flagTable    bool
	flagNoColor  bool
	flagVerbose  bool
	flagStrict   bool
	flagConfig   string
	flagMaxBytes int64
	flagNm       string
	flagObjdump  string

	version = "0.1.0"
)

// rootCmd is the base Cobra command. Invoked with an optional binary path it
// runs the gate; subcommands inspect the policy and the local toolchain.
var rootCmd = &cobra.Command{
	Use:   "offlinegate [binary]",
	Short: "Fail the build when networking code is compiled or imported",
	Long: "offlinegate scans the source tree for forbidden networking imports and, when a\n" +
		"compiled binary is given, its symbol table for networking APIs. It exits 1 on\n" +
		"any violation so an offline-only app cannot ship with networking code.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

// Execute runs the CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .offlinegate.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagNm, "nm", "", "nm executable used for the dynamic symbol dump")
	rootCmd.PersistentFlags().StringVar(&flagObjdump, "objdump", "", "objdump executable used as the fallback symbol dump")

	addCheckFlags(rootCmd)
}

// addCheckFlags registers the flags shared by every command that runs the gate.
func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&flagRoots, "root", nil, "source root to scan (repeatable; replaces the default roots)")
	f.StringSliceVar(&flagExts, "ext", nil, "eligible source file suffixes (default .swift,.m,.mm,.h)")
	f.StringSliceVar(&flagExclude, "exclude", nil, "doublestar globs of root-relative paths to skip")
	f.BoolVar(&flagJSON, "json", false, "emit JSON")
	f.BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	f.BoolVar(&flagTable, "table", false, "emit a single table of matches")
	f.BoolVar(&flagVerbose, "verbose", false, "also print info-level diagnostics")
	f.BoolVar(&flagStrict, "strict", false, "fail when the binary could not be inspected")
	f.Int64Var(&flagMaxBytes, "max-bytes", 0, "skip source files larger than this (0 = no limit)")
}
