// Package catalog holds the static pain-point and service tables that drive
// extraction and scoring.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ServiceCatalogEntry is one sellable offering.
type ServiceCatalogEntry struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`
}

// PainPointCategory is a named business challenge detected by keywords.
type PainPointCategory struct {
	ID                  string   `yaml:"id" json:"id"`
	Name                string   `yaml:"name" json:"name"`
	Description         string   `yaml:"description" json:"description"`
	Keywords            []string `yaml:"keywords" json:"keywords"`
	RecommendedServices []string `yaml:"recommended_services" json:"recommended_services"`
	SolutionDescription string   `yaml:"solution_description" json:"solution_description,omitempty"`
	ReferenceURLs       []string `yaml:"reference_urls" json:"reference_urls,omitempty"`
}

// KeywordGroup is a generic content category used for research points.
type KeywordGroup struct {
	ID       string   `yaml:"id" json:"id"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Signals are keyword sets the scorer and discovery count against.
type Signals struct {
	Insurance           []string `yaml:"insurance" json:"insurance"`
	Technology          []string `yaml:"technology" json:"technology"`
	Challenge           []string `yaml:"challenge" json:"challenge"`
	DiscoveryIndicators []string `yaml:"discovery_indicators" json:"discovery_indicators"`
	DiscoveryTech       []string `yaml:"discovery_tech" json:"discovery_tech"`
}

// Catalog is the injectable keyword and service configuration. It is
// treated as read-only once built.
type Catalog struct {
	ProviderName       string                `yaml:"provider_name" json:"provider_name"`
	Services           []ServiceCatalogEntry `yaml:"services" json:"services"`
	PainPoints         []PainPointCategory   `yaml:"pain_points" json:"pain_points"`
	ResearchCategories []KeywordGroup        `yaml:"research_categories" json:"research_categories"`
	Signals            Signals               `yaml:"signals" json:"signals"`
}

// Service looks up a service by ID.
func (c *Catalog) Service(id string) (ServiceCatalogEntry, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceCatalogEntry{}, false
}

// PainPoint looks up a pain-point category by ID.
func (c *Catalog) PainPoint(id string) (PainPointCategory, bool) {
	for _, p := range c.PainPoints {
		if p.ID == id {
			return p, true
		}
	}
	return PainPointCategory{}, false
}

// ServiceIDs returns service IDs in catalog order.
func (c *Catalog) ServiceIDs() []string {
	ids := make([]string, len(c.Services))
	for i, s := range c.Services {
		ids[i] = s.ID
	}
	return ids
}

// ServiceName returns the display name for a service ID, deriving one from
// the ID when the entry is unknown or unnamed.
func (c *Catalog) ServiceName(id string) string {
	if s, ok := c.Service(id); ok && s.DisplayName != "" {
		return s.DisplayName
	}
	return DisplayName(id)
}

// CategoryName returns the display name for a pain-point or research category.
func (c *Catalog) CategoryName(id string) string {
	if p, ok := c.PainPoint(id); ok && p.Name != "" {
		return p.Name
	}
	return DisplayName(id)
}

// DisplayName turns a snake_case identifier into title case ("data_silos" -> "Data Silos").
func DisplayName(id string) string {
	// Casers carry state and must not be shared across goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// Normalize lower-cases and trims every keyword, dropping blanks and
// duplicates while preserving order. Missing display names are derived
// from IDs.
func (c *Catalog) Normalize() {
	for i := range c.Services {
		c.Services[i].ID = strings.TrimSpace(c.Services[i].ID)
		if c.Services[i].DisplayName == "" {
			c.Services[i].DisplayName = DisplayName(c.Services[i].ID)
		}
	}
	for i := range c.PainPoints {
		p := &c.PainPoints[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.Name == "" {
			p.Name = DisplayName(p.ID)
		}
		p.Keywords = normalizeKeywords(p.Keywords)
	}
	for i := range c.ResearchCategories {
		c.ResearchCategories[i].Keywords = normalizeKeywords(c.ResearchCategories[i].Keywords)
	}
	c.Signals.Insurance = normalizeKeywords(c.Signals.Insurance)
	c.Signals.Technology = normalizeKeywords(c.Signals.Technology)
	c.Signals.Challenge = normalizeKeywords(c.Signals.Challenge)
	c.Signals.DiscoveryIndicators = normalizeKeywords(c.Signals.DiscoveryIndicators)
	c.Signals.DiscoveryTech = normalizeKeywords(c.Signals.DiscoveryTech)
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Validate checks catalog consistency: unique IDs, non-empty keyword lists,
// and that every recommended service exists.
func (c *Catalog) Validate() error {
	var errs []string

	if len(c.Services) == 0 {
		errs = append(errs, "services must not be empty")
	}
	services := make(map[string]struct{}, len(c.Services))
	for i, s := range c.Services {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("services[%d]: id is required", i))
			continue
		}
		if _, dup := services[s.ID]; dup {
			errs = append(errs, fmt.Sprintf("services: duplicate id %q", s.ID))
		}
		services[s.ID] = struct{}{}
	}

	categories := make(map[string]struct{}, len(c.PainPoints))
	for i, p := range c.PainPoints {
		if p.ID == "" {
			errs = append(errs, fmt.Sprintf("pain_points[%d]: id is required", i))
			continue
		}
		if _, dup := categories[p.ID]; dup {
			errs = append(errs, fmt.Sprintf("pain_points: duplicate id %q", p.ID))
		}
		categories[p.ID] = struct{}{}
		if len(p.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("pain_points[%s]: keywords must not be empty", p.ID))
		}
		for _, sid := range p.RecommendedServices {
			if _, ok := services[sid]; !ok {
				errs = append(errs, fmt.Sprintf("pain_points[%s]: unknown service %q", p.ID, sid))
			}
		}
	}

	groups := make(map[string]struct{}, len(c.ResearchCategories))
	for i, g := range c.ResearchCategories {
		if g.ID == "" {
			errs = append(errs, fmt.Sprintf("research_categories[%d]: id is required", i))
			continue
		}
		if _, dup := groups[g.ID]; dup {
			errs = append(errs, fmt.Sprintf("research_categories: duplicate id %q", g.ID))
		}
		groups[g.ID] = struct{}{}
		if len(g.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("research_categories[%s]: keywords must not be empty", g.ID))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("catalog: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
