package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// RunStatus represents the current state of a research run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusCollecting RunStatus = "collecting"
	RunStatusScoring    RunStatus = "scoring"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// Company identifies the organization being researched.
type Company struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// DateWindow restricts search results to a publication range. A zero
// Start or End leaves that side open.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateLayout is the wire format for window dates.
const DateLayout = "2006-01-02"

// ParseDateWindow builds a window from two YYYY-MM-DD strings. Both empty
// returns nil.
func ParseDateWindow(start, end string) (*DateWindow, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}

	var w DateWindow
	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return nil, eris.Wrapf(err, "model: parse start date %q", start)
		}
		w.Start = t
	}
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return nil, eris.Wrapf(err, "model: parse end date %q", end)
		}
		w.End = t
	}
	if !w.Start.IsZero() && !w.End.IsZero() && w.End.Before(w.Start) {
		return nil, eris.Errorf("model: end date %s before start date %s", end, start)
	}
	return &w, nil
}

// StartString returns the window start formatted as YYYY-MM-DD, or "".
func (w *DateWindow) StartString() string {
	if w == nil || w.Start.IsZero() {
		return ""
	}
	return w.Start.Format(DateLayout)
}

// EndString returns the window end formatted as YYYY-MM-DD, or "".
func (w *DateWindow) EndString() string {
	if w == nil || w.End.IsZero() {
		return ""
	}
	return w.End.Format(DateLayout)
}

// ResearchRequest is one user-triggered research request. Everything the
// pipeline needs travels in the request; nothing is shared between requests.
type ResearchRequest struct {
	Company Company     `json:"company"`
	Window  *DateWindow `json:"window,omitempty"`
	Mode    string      `json:"mode,omitempty"`
}

// Run represents a single archived research run for a company.
type Run struct {
	ID        string          `json:"id"`
	Company   Company         `json:"company"`
	Status    RunStatus       `json:"status"`
	Mode      string          `json:"mode"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RunFilter controls run listing.
type RunFilter struct {
	Status      RunStatus `json:"status,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Limit       int       `json:"limit,omitempty"`
	Offset      int       `json:"offset,omitempty"`
}
