package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog override from a YAML file. Sections absent from the
// file keep their built-in values. The result is normalized and validated.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document layered over the defaults.
func Parse(data []byte) (*Catalog, error) {
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}

	c := Default()
	if override.ProviderName != "" {
		c.ProviderName = override.ProviderName
	}
	if len(override.Services) > 0 {
		c.Services = override.Services
	}
	if len(override.PainPoints) > 0 {
		c.PainPoints = override.PainPoints
	}
	if len(override.ResearchCategories) > 0 {
		c.ResearchCategories = override.ResearchCategories
	}
	mergeSignals(&c.Signals, override.Signals)

	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolve returns the catalog at path, or the defaults when path is empty.
// A non-empty providerName replaces the catalog's own.
func Resolve(path, providerName string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	if path == "" {
		c = Default()
	} else if c, err = Load(path); err != nil {
		return nil, err
	}
	if providerName != "" {
		c.ProviderName = providerName
	}
	return c, nil
}

func mergeSignals(dst *Signals, src Signals) {
	if len(src.Insurance) > 0 {
		dst.Insurance = src.Insurance
	}
	if len(src.Technology) > 0 {
		dst.Technology = src.Technology
	}
	if len(src.Challenge) > 0 {
		dst.Challenge = src.Challenge
	}
	if len(src.DiscoveryIndicators) > 0 {
		dst.DiscoveryIndicators = src.DiscoveryIndicators
	}
	if len(src.DiscoveryTech) > 0 {
		dst.DiscoveryTech = src.DiscoveryTech
	}
}
