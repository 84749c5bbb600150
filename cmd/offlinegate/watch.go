package offlinegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/offlinegate/offlinegate/internal/watch"
	"github.com/spf13/cobra"
)

var flagDebounce time.Duration

func init() {
	cmd := &cobra.Command{
		Use:   "watch [binary]",
		Short: "Re-run the gate whenever an eligible source file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := watchLoop(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flagOptions(args), flagDebounce)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	addCheckFlags(cmd)
	cmd.Flags().DurationVar(&flagDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-running")
	rootCmd.AddCommand(cmd)
}

// watchLoop runs the gate once, then again after every batch of changes,
// until ctx is cancelled. Violations and errors from a re-run are reported
// to errOut and never stop the loop, so fixing the cause is picked up by the
// next batch.
func watchLoop(ctx context.Context, out, errOut io.Writer, o checkOptions, debounce time.Duration) error {
	fc, err := loadConfig(o.Dir, o.Config)
	if err != nil {
		return err
	}
	src := resolve(o, fc).Source

	w, err := watch.New(src.Roots, src.Extensions, debounce)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if _, err := check(ctx, out, o); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nwatching %d directories; press Ctrl-C to stop\n", len(w.Dirs()))

	return w.Run(ctx, func(changed []string) {
		fmt.Fprintf(out, "\n--- %d file(s) changed at %s ---\n", len(changed), time.Now().Format(time.TimeOnly))
		if _, err := check(ctx, out, o); err != nil && ctx.Err() == nil {
			fmt.Fprintln(errOut, "error:", err)
		}
	})
}
