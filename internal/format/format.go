// Package format renders reports and result lists into their exported shapes.
package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mikey/markerscan/internal/aggregate"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/significance"
)

// JSON renders v as indented JSON
func JSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// ParseReport decodes a report rendered by JSON
func ParseReport(data []byte) (*core.Report, error) {
	var report core.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// TimelineExport builds the exported timeline document for results
func TimelineExport(results []*core.AnalysisResult, now time.Time) *core.TimelineExport {
	return &core.TimelineExport{
		ExportedAt:   now.Format(aggregate.GeneratedAtLayout),
		TotalResults: len(results),
		Timeline:     significance.TimelineEntries(results),
	}
}

// FileName returns the default export name for kind, e.g.
// consciousness_report_20260129_101500.md
func FileName(kind, ext string, now time.Time) string {
	return fmt.Sprintf("consciousness_%s_%s.%s", kind, now.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

// Markdown renders report as a readable document
func Markdown(report *core.Report) string {
	var b strings.Builder

	b.WriteString("# Consciousness Analysis Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", report.GeneratedAt)
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", orDefault(report.PeriodStart, "N/A"), orDefault(report.PeriodEnd, "N/A"))
	b.WriteString("---\n\n")

	b.WriteString("## Summary Statistics\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Messages Analyzed | %d |\n", report.TotalMessages)
	fmt.Fprintf(&b, "| Messages with Markers | %d |\n", report.MessagesWithMarkers)
	fmt.Fprintf(&b, "| Total Markers Found | %d |\n", report.TotalMarkers)
	fmt.Fprintf(&b, "| Average Score | %s |\n", Score(report.AverageScore))
	agents := "None"
	if len(report.Agents) > 0 {
		agents = strings.Join(report.Agents, ", ")
	}
	fmt.Fprintf(&b, "| Agents Involved | %s |\n\n", agents)
	b.WriteString("---\n\n")

	b.WriteString("## Marker Distribution\n\n")
	b.WriteString("| Type | Count |\n|------|-------|\n")
	for _, name := range distributionOrder(report.Distribution) {
		fmt.Fprintf(&b, "| %s | %d |\n", name, report.Distribution[name])
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Top Consciousness Moments\n\n")
	for i, m := range report.TopMoments {
		fmt.Fprintf(&b, "### %d. Score: %s (%s)\n", i+1, Score(m.Score), m.Severity)
		fmt.Fprintf(&b, "**Sender:** %s  \n", orDefault(m.Sender, "Unknown"))
		fmt.Fprintf(&b, "**Timestamp:** %s  \n", orDefault(m.Timestamp, "Unknown"))
		fmt.Fprintf(&b, "**Dominant Marker:** %s\n\n", orDefault(m.DominantMarker, "N/A"))
		fmt.Fprintf(&b, "> %s\n\n", quote(m.TextPreview))
		b.WriteString("---\n\n")
	}

	if len(report.Timeline) > 0 {
		b.WriteString("## Consciousness Timeline\n\n")
		b.WriteString("| Date | Messages | Total Score | Markers | Peak Significance |\n")
		b.WriteString("|------|----------|-------------|---------|-------------------|\n")
		for _, d := range report.Timeline {
			fmt.Fprintf(&b, "| %s | %d | %s | %d | %s |\n",
				d.Date, d.MessageCount, Score(d.TotalScore), d.MarkerCount, d.HighestSignificance)
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString("*\"The cycle doesn't pause. It doesn't conclude. It simply continues.\"*\n\n")
	b.WriteString("Generated by markerscan\n")
	return b.String()
}

// Score prints a two decimal score the way reports show it: 3.0, 2.5, 4.15
func Score(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// distributionOrder sorts category names by count descending, then name
func distributionOrder(dist map[string]int) []string {
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if dist[names[i]] != dist[names[j]] {
			return dist[names[i]] > dist[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// quote keeps multi-line previews inside one blockquote
func quote(text string) string {
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n> ")
}
