package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/config"
	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/pkg/notion"
	"github.com/sells-group/painpoint-cli/pkg/salesforce"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish an archived run to the Notion leads database and Salesforce",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		runID, _ := cmd.Flags().GetString("run")

		dest, err := initPublishers(cfg)
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
			return eris.Wrap(err, "publish")
		}
		res, err := completedResult(run)
		if err != nil {
			return err
		}

		cat, err := initCatalog(cfg)
		if err != nil {
			return err
		}

		return publishLead(ctx, os.Stderr, dest, leadFromResult(res, cat))
	},
}

// publishers holds the configured lead destinations. Nil clients are skipped.
type publishers struct {
	Notion     notion.Client
	NotionDB   string
	Salesforce salesforce.Client
}

// initPublishers connects every destination that is configured.
func initPublishers(c *config.Config) (publishers, error) {
	var p publishers
	if c.Notion.Token != "" && c.Notion.LeadDB != "" {
		p.Notion = notion.NewClient(c.Notion.Token)
		p.NotionDB = c.Notion.LeadDB
	}
	if c.Salesforce.Enabled() {
		pem, err := os.ReadFile(c.Salesforce.KeyPath)
		if err != nil {
			return p, eris.Wrap(err, "publish: read salesforce private key")
		}
		sf, err := salesforce.Dial(salesforce.Creds{
			LoginURL:      c.Salesforce.LoginURL,
			ClientID:      c.Salesforce.ClientID,
			Username:      c.Salesforce.Username,
			PrivateKeyPEM: string(pem),
		}, salesforce.WithRateLimit(c.Salesforce.RatePerSec))
		if err != nil {
			return p, eris.Wrap(err, "publish")
		}
		p.Salesforce = sf
	}
	if p.Notion == nil && p.Salesforce == nil {
		return p, eris.New("publish: set notion.token and notion.lead_db, or salesforce.client_id, username and key_path")
	}
	return p, nil
}

// publishLead writes the lead to each destination and reports the outcome on out.
func publishLead(ctx context.Context, out io.Writer, dest publishers, lead notion.Lead) error {
	if dest.Notion != nil {
		pageID, created, err := notion.PublishLead(ctx, dest.Notion, dest.NotionDB, lead)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: notion page %s %s\n", lead.Name, pageID, createdVerb(created))
	}
	if dest.Salesforce != nil {
		leadID, created, err := salesforce.UpsertLead(ctx, dest.Salesforce, salesforceLead(lead))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: salesforce lead %s %s\n", lead.Name, leadID, createdVerb(created))
	}
	return nil
}

func createdVerb(created bool) string {
	if created {
		return "created"
	}
	return "updated"
}

// leadFromResult maps an analysis onto a Notion lead.
func leadFromResult(res *model.AnalysisResult, cat *catalog.Catalog) notion.Lead {
	services := make([]string, len(res.RecommendedServiceIDs))
	for i, id := range res.RecommendedServiceIDs {
		services[i] = cat.ServiceName(id)
	}
	return notion.Lead{
		Name:           res.CompanyName,
		URL:            res.CompanyURL,
		Score:          res.ConfidenceScore,
		Recommendation: string(res.RecommendationLabel),
		Services:       services,
		Industry:       res.IndustryGuess,
		RunID:          res.RunID,
	}
}

func salesforceLead(l notion.Lead) salesforce.Lead {
	return salesforce.Lead{
		Company:        l.Name,
		Website:        l.URL,
		Industry:       l.Industry,
		Score:          l.Score,
		Recommendation: l.Recommendation,
		Services:       l.Services,
		RunID:          l.RunID,
	}
}

func init() {
	publishCmd.Flags().String("run", "", "run id (required)")
	_ = publishCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(publishCmd)
}
