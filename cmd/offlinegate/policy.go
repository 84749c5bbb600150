package offlinegate

import (
	"fmt"
	"io"

	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "List the forbidden patterns by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := loadConfig("", flagConfig)
			if err != nil {
				return err
			}
			printPolicy(cmd.OutOrStdout(), policy.Default().With(fc.ExtraBinaryPatterns, fc.ExtraSourcePatterns))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

func printPolicy(w io.Writer, reg *policy.Registry) {
	for _, cat := range []types.Category{types.CatBinarySymbol, types.CatSourceText} {
		fmt.Fprintf(w, "%s:\n", cat)
		for _, p := range reg.Patterns(cat) {
			fmt.Fprintf(w, "  %s\n", p.Text)
		}
	}
}
