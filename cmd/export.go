package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an archived run as a report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		runID, _ := cmd.Flags().GetString("run")
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		format, err := resolveFormat(format, out)
		if err != nil {
			return err
		}

		st, err := requireStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, runID)
		if err != nil {
			return eris.Wrap(err, "export")
		}
		res, err := completedResult(run)
		if err != nil {
			return err
		}

		cat, err := initCatalog(cfg)
		if err != nil {
			return err
		}

		err = writeOutput(out, func(w io.Writer) error {
			return report.Write(w, format, res, cat)
		})
		if err != nil {
			return eris.Wrap(err, "export: write report")
		}
		if out != "" && out != "-" {
			fmt.Fprintf(os.Stderr, "run %s exported to %s\n", truncateID(run.ID), out)
		}
		return nil
	},
}

// completedResult returns the stored analysis of a completed run.
func completedResult(run *model.Run) (*model.AnalysisResult, error) {
	if run.Status != model.RunStatusComplete || run.Result == nil {
		return nil, eris.Errorf("run %s has status %s; only complete runs have a result", run.ID, run.Status)
	}
	res := run.Result
	if res.RunID == "" {
		res.RunID = run.ID
	}
	return res, nil
}

func init() {
	exportCmd.Flags().String("run", "", "run id (required)")
	exportCmd.Flags().String("format", "", "report format: csv, tsv, json, xlsx, md, html")
	exportCmd.Flags().String("out", "", "output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(exportCmd)
}
