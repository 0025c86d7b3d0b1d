// Package scorer turns extracted evidence into a scored fit assessment.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/config"
)

// Confidence score formulas.
const (
	// FormulaCappedLinear weights categories, technology mentions, and
	// challenge mentions with individual caps of 50, 25, and 25.
	FormulaCappedLinear = "capped_linear"
	// FormulaLinear is 15 per unique category plus 2 per evidence entry.
	FormulaLinear = "linear"
)

// DefaultScoringConfig returns a config.ScoringConfig with the default
// formula and tier thresholds.
func DefaultScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		Formula:           FormulaCappedLinear,
		StrongThreshold:   70,
		ModerateThreshold: 50,
		WeakThreshold:     30,
		MaxServices:       0,
		FallbackServices:  4,
	}
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	switch c.Formula {
	case FormulaCappedLinear, FormulaLinear:
	default:
		errs = append(errs, fmt.Sprintf("formula must be %q or %q, got %q", FormulaCappedLinear, FormulaLinear, c.Formula))
	}

	thresholds := []struct {
		name  string
		value int
	}{
		{"strong_threshold", c.StrongThreshold},
		{"moderate_threshold", c.ModerateThreshold},
		{"weak_threshold", c.WeakThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 100 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 100", th.name))
		}
	}
	if c.StrongThreshold < c.ModerateThreshold {
		errs = append(errs, "strong_threshold must be >= moderate_threshold")
	}
	if c.ModerateThreshold < c.WeakThreshold {
		errs = append(errs, "moderate_threshold must be >= weak_threshold")
	}

	if c.MaxServices < 0 {
		errs = append(errs, "max_services must be >= 0")
	}
	if c.FallbackServices < 0 {
		errs = append(errs, "fallback_services must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
