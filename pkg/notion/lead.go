package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Lead is a scored company ready to publish to a leads database.
type Lead struct {
	Name           string
	URL            string
	Score          int
	Recommendation string
	Services       []string
	Industry       string
	RunID          string
}

// Properties maps the lead onto the leads database schema.
func (l Lead) Properties() notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: l.Name}},
			},
		},
		"Score": notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(l.Score),
		},
		"Recommendation": notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: l.Recommendation},
		},
	}

	services := make([]notionapi.Option, len(l.Services))
	for i, s := range l.Services {
		services[i] = notionapi.Option{Name: s}
	}
	props["Services"] = notionapi.MultiSelectProperty{
		Type:        notionapi.PropertyTypeMultiSelect,
		MultiSelect: services,
	}

	if l.Industry != "" {
		props["Industry"] = notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: l.Industry},
		}
	}
	if l.URL != "" {
		props["URL"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  l.URL,
		}
	}
	if l.RunID != "" {
		props["Run ID"] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: l.RunID}},
			},
		}
	}
	return props
}

// PublishLead creates a page for the lead, or updates the existing page with
// the same name. It returns the page ID and whether a new page was created.
func PublishLead(ctx context.Context, c Client, dbID string, lead Lead) (string, bool, error) {
	if lead.Name == "" {
		return "", false, eris.New("notion: lead has no name")
	}

	existing, err := FindLead(ctx, c, dbID, lead.Name)
	if err != nil {
		return "", false, err
	}

	if existing != nil {
		page, err := c.UpdatePage(ctx, string(existing.ID), &notionapi.PageUpdateRequest{
			Properties: lead.Properties(),
		})
		if err != nil {
			return "", false, eris.Wrap(err, fmt.Sprintf("notion: update lead %s", lead.Name))
		}
		zap.L().Info("notion: lead updated", zap.String("company", lead.Name), zap.String("page_id", string(page.ID)))
		return string(page.ID), false, nil
	}

	page, err := c.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: lead.Properties(),
	})
	if err != nil {
		return "", false, eris.Wrap(err, fmt.Sprintf("notion: create lead %s", lead.Name))
	}
	zap.L().Info("notion: lead created", zap.String("company", lead.Name), zap.String("page_id", string(page.ID)))
	return string(page.ID), true, nil
}
