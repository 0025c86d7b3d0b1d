package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/pipeline"
	"github.com/sells-group/painpoint-cli/internal/report"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a single company and export the analysis",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		company, _ := cmd.Flags().GetString("company")
		url, _ := cmd.Flags().GetString("url")
		start, _ := cmd.Flags().GetString("start-date")
		end, _ := cmd.Flags().GetString("end-date")
		mode, _ := cmd.Flags().GetString("mode")
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		req, err := buildRequest(company, url, start, end, mode)
		if err != nil {
			return err
		}
		format, err = resolveFormat(format, out)
		if err != nil {
			return err
		}

		env, err := initResearch(ctx, cfg, pipeline.NewPacer(cfg.Search.RatePerSec))
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Service.Research(ctx, req)
		if err != nil {
			return err
		}

		err = writeOutput(out, func(w io.Writer) error {
			return report.Write(w, format, res, env.Catalog)
		})
		if err != nil {
			return eris.Wrap(err, "research: write report")
		}
		if out != "" && out != "-" {
			fmt.Fprintf(os.Stderr, "%s: %d/100 (%s), report written to %s\n",
				res.CompanyName, res.ConfidenceScore, res.RecommendationLabel, out)
		}
		return nil
	},
}

// buildRequest validates flag input into a research request.
func buildRequest(company, url, start, end, mode string) (model.ResearchRequest, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return model.ResearchRequest{}, eris.New("research: --company is required")
	}
	window, err := model.ParseDateWindow(start, end)
	if err != nil {
		return model.ResearchRequest{}, err
	}
	return model.ResearchRequest{
		Company: model.Company{Name: company, URL: strings.TrimSpace(url)},
		Window:  window,
		Mode:    strings.ToLower(strings.TrimSpace(mode)),
	}, nil
}

// resolveFormat picks the export format from the flag, falling back to
// the output file extension and then CSV.
func resolveFormat(format, out string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		if format == "markdown" {
			format = report.FormatMarkdown
		}
		if !slices.Contains(report.Formats, format) {
			format = report.FormatCSV
		}
	}
	if !slices.Contains(report.Formats, format) {
		return "", eris.Errorf("unsupported format %q (want one of %s)", format, strings.Join(report.Formats, ", "))
	}
	return format, nil
}

func init() {
	researchCmd.Flags().String("company", "", "company name to research (required)")
	researchCmd.Flags().String("url", "", "company website")
	researchCmd.Flags().String("start-date", "", "only use sources published on or after YYYY-MM-DD")
	researchCmd.Flags().String("end-date", "", "only use sources published on or before YYYY-MM-DD")
	researchCmd.Flags().String("mode", "", "assessment mode: keyword or llm (default from config)")
	researchCmd.Flags().String("format", "", "report format: csv, tsv, json, xlsx, md, html (default from --out extension, else csv)")
	researchCmd.Flags().String("out", "", "output file (default stdout)")
	_ = researchCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(researchCmd)
}
