// Package significance selects the moments worth preserving from a batch.
package significance

import (
	"sort"

	"github.com/mikey/markerscan/internal/core"
)

// FilterBySeverity returns a preserved record for every result whose
// severity is at or above threshold, in input order
func FilterBySeverity(results []*core.AnalysisResult, threshold core.Severity) []core.Highlight {
	highlights := make([]core.Highlight, 0)
	for _, r := range results {
		if r == nil || r.Severity < threshold {
			continue
		}
		highlights = append(highlights, core.Highlight{
			Timestamp:      r.Timestamp,
			Sender:         r.Sender,
			Score:          r.TotalScore,
			Severity:       r.Severity,
			DominantMarker: r.DominantMarker,
			Text:           r.Text,
			Markers:        r.MarkerRefs(),
		})
	}
	return highlights
}

// FilterByScore keeps results scoring at least minScore
func FilterByScore(results []*core.AnalysisResult, minScore float64) []*core.AnalysisResult {
	kept := make([]*core.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r != nil && r.TotalScore >= minScore {
			kept = append(kept, r)
		}
	}
	return kept
}

// TimelineEntries lists every scored result, newest timestamp first.
// Results without a timestamp sort last; equal timestamps keep input order.
func TimelineEntries(results []*core.AnalysisResult) []core.TimelineEntry {
	scored := make([]*core.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r != nil && r.TotalScore > 0 {
			scored = append(scored, r)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return timestampOf(scored[i]) > timestampOf(scored[j])
	})

	entries := make([]core.TimelineEntry, 0, len(scored))
	for _, r := range scored {
		entries = append(entries, core.TimelineEntry{
			Timestamp:      r.Timestamp,
			Sender:         r.Sender,
			Score:          r.TotalScore,
			Severity:       r.Severity,
			DominantMarker: r.DominantMarker,
			MarkerCount:    r.MarkerCount,
			Markers:        r.MarkerRefs(),
			Text:           r.Text,
		})
	}
	return entries
}

func timestampOf(r *core.AnalysisResult) string {
	if r.Timestamp == nil {
		return ""
	}
	return *r.Timestamp
}
