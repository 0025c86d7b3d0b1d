package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/painpoint-cli/internal/fetcher"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/pipeline"
	"github.com/sells-group/painpoint-cli/internal/report"
)

// researchFunc researches one company. i is its position in the input list.
type researchFunc func(ctx context.Context, i int, company model.Company) (*model.AnalysisResult, error)

// batchOutcome is the result of one company in a batch.
type batchOutcome struct {
	Company model.Company
	Result  *model.AnalysisResult
	Err     error
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Research every company in a CSV, TSV or XLSX list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		file, _ := cmd.Flags().GetString("file")
		limit, _ := cmd.Flags().GetInt("limit")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		outDir, _ := cmd.Flags().GetString("out-dir")
		format, _ := cmd.Flags().GetString("format")
		mode, _ := cmd.Flags().GetString("mode")

		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}
		format, err := resolveFormat(format, "")
		if err != nil {
			return err
		}

		companies, err := fetcher.LoadCompanies(ctx, file, fetcher.NewSchemeDownloader(
			fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
			fetcher.NewFTPFetcher(fetcher.FTPOptions{}),
		))
		if err != nil {
			return eris.Wrap(err, "batch: load companies")
		}

		// One pacer for the whole batch keeps the global search rate.
		env, err := initResearch(ctx, cfg, pipeline.NewPacer(cfg.Search.RatePerSec))
		if err != nil {
			return err
		}
		defer env.Close()

		var names []string
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return eris.Wrap(err, "batch: create output dir")
			}
			names = reportFilenames(companies, format)
		}

		research := func(ctx context.Context, i int, company model.Company) (*model.AnalysisResult, error) {
			res, err := env.Service.Research(ctx, model.ResearchRequest{Company: company, Mode: mode})
			if err != nil {
				return nil, err
			}
			if outDir != "" {
				if err := writeReportFile(filepath.Join(outDir, names[i]), format, res, env); err != nil {
					zap.L().Warn("batch: failed to write report", zap.String("company", company.Name), zap.Error(err))
				}
			}
			return res, nil
		}

		outcomes, err := processBatch(ctx, companies, limit, concurrency, research)
		if err != nil {
			return err
		}
		formatBatchSummary(os.Stdout, outcomes)
		return nil
	},
}

// processBatch applies limit, then researches companies concurrently.
// Individual failures are recorded in the outcome and never abort the batch.
// Outcomes keep input order.
func processBatch(ctx context.Context, companies []model.Company, limit, concurrency int, research researchFunc) ([]batchOutcome, error) {
	if len(companies) == 0 {
		zap.L().Info("batch: no companies found")
		return nil, nil
	}
	if limit > 0 && len(companies) > limit {
		companies = companies[:limit]
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("companies", len(companies)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	outcomes := make([]batchOutcome, len(companies))
	var succeeded, failed atomic.Int64

	for i, company := range companies {
		g.Go(func() error {
			log := zap.L().With(zap.String("company", company.Name))

			res, err := research(gctx, i, company)
			outcomes[i] = batchOutcome{Company: company, Result: res, Err: err}
			if err != nil {
				failed.Add(1)
				log.Error("research failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("research complete",
				zap.Int("score", res.ConfidenceScore),
				zap.String("recommendation", string(res.RecommendationLabel)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return outcomes, nil
}

// formatBatchSummary writes one line per company to out.
func formatBatchSummary(out io.Writer, outcomes []batchOutcome) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tSCORE\tRECOMMENDATION\tRUN\tERROR")
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			msg := "canceled"
			if o.Err != nil {
				msg = o.Err.Error()
			}
			_, _ = fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", o.Company.Name, msg)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n",
			o.Company.Name,
			o.Result.ConfidenceScore,
			o.Result.RecommendationLabel,
			truncateID(o.Result.RunID),
		)
	}
	_ = w.Flush()
}

// reportFilenames returns one report filename per company in input order.
// Companies whose names map to the same file get _2, _3, ... suffixes.
func reportFilenames(companies []model.Company, ext string) []string {
	names := make([]string, len(companies))
	taken := make(map[string]bool, len(companies))
	for i, c := range companies {
		name := report.Filename(c.Name, ext)
		if taken[name] {
			base := strings.TrimSuffix(name, filepath.Ext(name))
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d%s", base, n, filepath.Ext(name))
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func writeReportFile(path, format string, res *model.AnalysisResult, env *researchEnv) error {
	return writeOutput(path, func(w io.Writer) error {
		return report.Write(w, format, res, env.Catalog)
	})
}

func init() {
	batchCmd.Flags().String("file", "", "company list: CSV, TSV or XLSX path, http(s) or ftp URL (required)")
	batchCmd.Flags().Int("limit", 0, "max companies to research (0 = all)")
	batchCmd.Flags().Int("concurrency", 0, "parallel research requests (default from config)")
	batchCmd.Flags().String("out-dir", "", "write one report per company into this directory")
	batchCmd.Flags().String("format", "csv", "report format for --out-dir")
	batchCmd.Flags().String("mode", "", "assessment mode: keyword or llm (default from config)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
