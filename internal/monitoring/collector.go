// Package monitoring summarizes archived research runs and raises alerts
// when failure rate or spend crosses configured thresholds.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/model"
	"github.com/sells-group/painpoint-cli/internal/store"
)

// scanLimit bounds how many runs one snapshot reads.
const scanLimit = 10000

// MetricsSnapshot holds a point-in-time view of research health.
type MetricsSnapshot struct {
	RunsTotal    int     `json:"runs_total"`
	RunsComplete int     `json:"runs_complete"`
	RunsFailed   int     `json:"runs_failed"`
	RunsActive   int     `json:"runs_active"`
	FailRate     float64 `json:"fail_rate"`
	CostUSD      float64 `json:"cost_usd"`
	AvgScore     float64 `json:"avg_score"`
	AvgDurSecs   float64 `json:"avg_duration_secs"`

	// Recommendations counts completed runs per tier.
	Recommendations map[model.Recommendation]int `json:"recommendations"`

	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers snapshots from the run archive.
type Collector struct {
	store store.Store
	now   func() time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st, now: time.Now}
}

// Collect summarizes runs created within the lookback window. A
// non-positive lookback covers every archived run.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	now := c.now().UTC()
	runs, err := c.store.ListRuns(ctx, model.RunFilter{Limit: scanLimit})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}

	var cutoff time.Time
	if lookbackHours > 0 {
		cutoff = now.Add(-time.Duration(lookbackHours) * time.Hour)
	}

	snap := Summarize(runs, cutoff)
	snap.LookbackHours = lookbackHours
	snap.CollectedAt = now
	return snap, nil
}

// Summarize builds a snapshot from runs created at or after cutoff.
func Summarize(runs []model.Run, cutoff time.Time) *MetricsSnapshot {
	snap := &MetricsSnapshot{Recommendations: make(map[model.Recommendation]int)}

	var totalScore int
	var totalDur time.Duration
	for _, r := range runs {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		snap.RunsTotal++

		switch r.Status {
		case model.RunStatusComplete:
			snap.RunsComplete++
			totalDur += r.UpdatedAt.Sub(r.CreatedAt)
			if r.Result != nil {
				totalScore += r.Result.ConfidenceScore
				snap.CostUSD += r.Result.EstimatedCostUSD
				snap.Recommendations[r.Result.RecommendationLabel]++
			}
		case model.RunStatusFailed:
			snap.RunsFailed++
		default:
			snap.RunsActive++
		}
	}

	if finished := snap.RunsComplete + snap.RunsFailed; finished > 0 {
		snap.FailRate = float64(snap.RunsFailed) / float64(finished)
	}
	if snap.RunsComplete > 0 {
		snap.AvgScore = float64(totalScore) / float64(snap.RunsComplete)
		snap.AvgDurSecs = totalDur.Seconds() / float64(snap.RunsComplete)
	}
	return snap
}
