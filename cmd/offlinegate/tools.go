package offlinegate

import (
	"context"
	"errors"
	"io"

	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/scanner/factory"
	"github.com/offlinegate/offlinegate/internal/scanner/symdump"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show which symbol-dump tools resolve, in fallback order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := loadConfig("", flagConfig)
			if err != nil {
				return err
			}
			tools := fc.GetTools()
			if flagNm != "" {
				tools.Nm = &flagNm
			}
			if flagObjdump != "" {
				tools.Objdump = &flagObjdump
			}
			printTools(cmd.Context(), cmd.OutOrStdout(), tools)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

func printTools(ctx context.Context, w io.Writer, tc config.ToolsConfig) {
	table := tablewriter.NewWriter(w)
	table.Header("TOOL", "PATH", "VERSION")
	for _, t := range factory.DefaultTools(factory.Config{Tools: tc}) {
		path, err := t.Find()
		if err != nil {
			var se *symdump.SpawnError
			msg := err.Error()
			if errors.As(err, &se) {
				msg = se.Err.Error()
			}
			_ = table.Append([]string{t.Name(), "unavailable", msg})
			continue
		}
		ver, err := t.Version(ctx)
		if err != nil {
			ver = "unknown"
		}
		_ = table.Append([]string{t.Name(), path, ver})
	}
	_ = table.Render()
}
