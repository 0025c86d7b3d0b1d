package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/discovery"
	"github.com/sells-group/painpoint-cli/internal/pipeline"
	"github.com/sells-group/painpoint-cli/internal/report"
	"github.com/sells-group/painpoint-cli/internal/search"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find potential clients in an industry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		industry, _ := cmd.Flags().GetString("industry")
		region, _ := cmd.Flags().GetString("region")
		minRelevance, _ := cmd.Flags().GetInt("min-relevance")
		out, _ := cmd.Flags().GetString("out")

		searcher, err := search.New(cfg)
		if err != nil {
			return err
		}
		cat, err := initCatalog(cfg)
		if err != nil {
			return err
		}

		d := discovery.New(searcher, cat, discovery.WithPacer(pipeline.NewPacer(cfg.Search.RatePerSec)))
		prospects, warnings := d.Discover(ctx, industry, region)
		for _, w := range warnings {
			zap.L().Warn("discover: query warning", zap.String("query", w.Query), zap.String("message", w.Message))
		}
		prospects = discovery.Filter(prospects, minRelevance)

		if out == "" {
			out = report.ProspectsFilename(time.Now().Format("20060102_150405"))
		}
		err = writeOutput(out, func(w io.Writer) error {
			return report.WriteProspectsCSV(w, prospects, cat)
		})
		if err != nil {
			return eris.Wrap(err, "discover: write prospects")
		}
		if out != "-" {
			fmt.Fprintf(os.Stderr, "%d prospects written to %s\n", len(prospects), out)
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().String("industry", discovery.DefaultIndustry, "industry to search")
	discoverCmd.Flags().String("region", discovery.DefaultRegion, "region to search")
	discoverCmd.Flags().Int("min-relevance", 30, "drop prospects scoring below this relevance (0-100)")
	discoverCmd.Flags().String("out", "", "output CSV (default prospects_<timestamp>.csv, - for stdout)")
	rootCmd.AddCommand(discoverCmd)
}
