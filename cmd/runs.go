package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/monitoring"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived research runs",
	Long:  "Commands for listing and viewing archived research runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List research runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		company, _ := cmd.Flags().GetString("company")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, model.RunFilter{
			Status:      model.RunStatus(status),
			CompanyName: company,
			Limit:       limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recent run health and spend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := requireStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		since, _ := cmd.Flags().GetInt("since")
		alert, _ := cmd.Flags().GetBool("alert")

		snap, err := monitoring.NewCollector(st).Collect(ctx, since)
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}
		formatRunStats(os.Stdout, snap)

		if !alert {
			return nil
		}
		alerter := monitoring.NewAlerter(cfg.Monitoring)
		alerts := alerter.Evaluate(snap)
		for _, a := range alerts {
			fmt.Fprintf(os.Stderr, "ALERT [%s] %s\n", a.Severity, a.Message)
		}
		alerter.SendAlerts(ctx, alerts)
		return nil
	},
}

func init() {
	runsStatsCmd.Flags().Int("since", 24, "lookback window in hours (0 for all runs)")
	runsStatsCmd.Flags().Bool("alert", false, "evaluate alert thresholds and notify the configured webhook")

	runsListCmd.Flags().String("status", "", "filter by run status (queued, collecting, scoring, complete, failed)")
	runsListCmd.Flags().String("company", "", "filter by company name (case-insensitive)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCOMPANY\tMODE\tSTATUS\tSCORE\tCREATED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t-------\t----\t------\t-----\t-------\t--------")

	for _, r := range runs {
		dur := r.UpdatedAt.Sub(r.CreatedAt).Round(time.Second).String()

		company := r.Company.Name
		if len(company) > 30 {
			company = company[:27] + "..."
		}

		score := "-"
		if r.Result != nil {
			score = fmt.Sprintf("%d (%s)", r.Result.ConfidenceScore, r.Result.RecommendationLabel)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateID(r.ID),
			company,
			r.Mode,
			r.Status,
			score,
			r.CreatedAt.Format("2006-01-02 15:04"),
			dur,
		)
	}
	_ = w.Flush()
}

// formatRunStats writes a run-health summary to w.
func formatRunStats(out io.Writer, snap *monitoring.MetricsSnapshot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	window := "all time"
	if snap.LookbackHours > 0 {
		window = fmt.Sprintf("last %dh", snap.LookbackHours)
	}
	_, _ = fmt.Fprintf(w, "WINDOW\t%s\n", window)
	_, _ = fmt.Fprintf(w, "RUNS\t%d\n", snap.RunsTotal)
	_, _ = fmt.Fprintf(w, "COMPLETE\t%d\n", snap.RunsComplete)
	_, _ = fmt.Fprintf(w, "FAILED\t%d\n", snap.RunsFailed)
	_, _ = fmt.Fprintf(w, "ACTIVE\t%d\n", snap.RunsActive)
	_, _ = fmt.Fprintf(w, "FAIL RATE\t%.1f%%\n", snap.FailRate*100)
	_, _ = fmt.Fprintf(w, "AVG SCORE\t%.1f\n", snap.AvgScore)
	_, _ = fmt.Fprintf(w, "AVG DURATION\t%s\n", time.Duration(snap.AvgDurSecs*float64(time.Second)).Round(time.Second))
	_, _ = fmt.Fprintf(w, "COST\t$%.2f\n", snap.CostUSD)

	for _, rec := range []model.Recommendation{
		model.RecommendationStrong,
		model.RecommendationModerate,
		model.RecommendationWeak,
		model.RecommendationInsufficient,
	} {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", strings.ToUpper(string(rec)), snap.Recommendations[rec])
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
