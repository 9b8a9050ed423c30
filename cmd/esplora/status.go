package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/display"
	"github.com/dando385/esplora-cli/internal/provider"
	"github.com/dando385/esplora-cli/internal/reports"
)

func statusCmd(a *app) *cobra.Command {
	var (
		report    bool
		reportDir string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the chain tip across every configured endpoint",
		Long: `Fetch the tip height and hash concurrently from every provider in the
config file, or from the network URL when none are configured, then show lag
behind the highest tip and any tip hash disagreement at the same height.

With --report the rows are also saved as JSON under --report-dir, named
status-YYYYMMDD-HHMMSS.json.

Exits with code 4 only when no endpoint answered.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}

			results := provider.CheckAll(cmd.Context(), a.cfg, a.log)

			rows := make([]display.StatusRow, 0, len(results))
			for _, r := range results {
				row := display.StatusRow{
					Provider: r.Provider.Name,
					URL:      r.Provider.URL,
					Latency:  r.Latency,
					Err:      r.Err,
				}
				if r.Err == nil {
					row.Height = r.Value.Height
					row.TipHash = r.Value.Hash.String()
				}
				rows = append(rows, row)
			}

			f := &display.StatusFormatter{Rows: rows}
			var err error
			if a.format == display.FormatJSON {
				err = f.FormatJSON(a.stdout)
			} else {
				err = f.Format(a.stdout)
			}
			if err != nil {
				return err
			}

			if report {
				path, err := reports.WriteJSON(reportDir, "status", f.Records(), time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stderr, "Report written: %s\n", path)
			}

			if _, ok := provider.MaxHeight(results); !ok {
				return &dispatch.Error{
					Op:   "status",
					Kind: dispatch.KindTransport,
					Err:  errors.New("no endpoint answered"),
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&report, "report", false, "Also save the result as a JSON report file")
	cmd.Flags().StringVar(&reportDir, "report-dir", reports.DefaultDir, "Directory for --report files")
	return cmd
}
