package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LeadSource tags every lead this tool writes.
const LeadSource = "Pain Point Research"

// placeholderLastName fills the required LastName until a contact is known.
const placeholderLastName = "Unknown"

// Lead is a scored company ready to publish as a Salesforce Lead.
type Lead struct {
	Company        string
	Website        string
	Industry       string
	Score          int
	Recommendation string
	Services       []string
	RunID          string
}

// Rating maps the recommendation onto the standard Lead rating picklist.
func (l Lead) Rating() string {
	switch l.Recommendation {
	case "Strong":
		return "Hot"
	case "Moderate":
		return "Warm"
	default:
		return "Cold"
	}
}

// Fields maps the lead onto standard Lead fields.
func (l Lead) Fields() map[string]any {
	var desc strings.Builder
	fmt.Fprintf(&desc, "Fit score %d/100 (%s).", l.Score, l.Recommendation)
	if len(l.Services) > 0 {
		fmt.Fprintf(&desc, "\nRecommended services: %s.", strings.Join(l.Services, ", "))
	}
	if l.RunID != "" {
		fmt.Fprintf(&desc, "\nResearch run: %s", l.RunID)
	}

	fields := map[string]any{
		"Company":     l.Company,
		"Rating":      l.Rating(),
		"LeadSource":  LeadSource,
		"Description": desc.String(),
	}
	if l.Website != "" {
		fields["Website"] = l.Website
	}
	if l.Industry != "" {
		fields["Industry"] = l.Industry
	}
	return fields
}

type leadRecord struct {
	ID string `json:"Id" salesforce:"Id"`
}

// FindLead returns the ID of the open lead for company, or "" when none exists.
func FindLead(ctx context.Context, c Client, company string) (string, error) {
	soql := fmt.Sprintf(
		"SELECT Id FROM Lead WHERE Company = '%s' AND IsConverted = false ORDER BY CreatedDate DESC LIMIT 1",
		escapeSoql(company),
	)
	var leads []leadRecord
	if err := c.Query(ctx, soql, &leads); err != nil {
		return "", eris.Wrap(err, fmt.Sprintf("sf: find lead %q", company))
	}
	if len(leads) == 0 {
		return "", nil
	}
	return leads[0].ID, nil
}

// UpsertLead updates the open lead for the company, or creates one. It
// returns the lead ID and whether a new lead was created.
func UpsertLead(ctx context.Context, c Client, lead Lead) (string, bool, error) {
	if strings.TrimSpace(lead.Company) == "" {
		return "", false, eris.New("sf: lead has no company")
	}

	id, err := FindLead(ctx, c, lead.Company)
	if err != nil {
		return "", false, err
	}

	fields := lead.Fields()
	if id != "" {
		if err := c.UpdateOne(ctx, "Lead", id, fields); err != nil {
			return "", false, eris.Wrap(err, fmt.Sprintf("sf: update lead %s", lead.Company))
		}
		zap.L().Info("sf: lead updated", zap.String("company", lead.Company), zap.String("lead_id", id))
		return id, false, nil
	}

	fields["LastName"] = placeholderLastName
	id, err = c.InsertOne(ctx, "Lead", fields)
	if err != nil {
		return "", false, eris.Wrap(err, fmt.Sprintf("sf: create lead %s", lead.Company))
	}
	zap.L().Info("sf: lead created", zap.String("company", lead.Company), zap.String("lead_id", id))
	return id, true, nil
}
