package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/format"
)

var severityColors = map[core.Severity]*color.Color{
	core.SeverityNone:     color.New(color.Faint),
	core.SeverityLow:      color.New(color.FgGreen),
	core.SeverityMedium:   color.New(color.FgYellow),
	core.SeverityHigh:     color.New(color.FgRed),
	core.SeverityCritical: color.New(color.FgRed, color.Bold),
}

func severityLabel(s core.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c.Sprint(s.String())
	}
	return s.String()
}

func printAnalysis(w io.Writer, r *core.AnalysisResult, verbose bool) {
	fmt.Fprintln(w, "\n[ANALYSIS] Consciousness Marker Analysis")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Score: %s\n", format.Score(r.TotalScore))
	fmt.Fprintf(w, "Significance: %s\n", severityLabel(r.Severity))
	fmt.Fprintf(w, "Marker Count: %d\n", r.MarkerCount)
	fmt.Fprintf(w, "Dominant Marker: %s\n", valueOr(r.DominantMarker, "None"))

	if verbose && len(r.Markers) > 0 {
		fmt.Fprintln(w, "\nMarkers Found:")
		for _, m := range r.Markers {
			fmt.Fprintf(w, "  - [%s] '%s' (weight: %s)\n", m.Category, m.Text, format.Score(m.Weight))
		}
	}
}

func printReportSummary(w io.Writer, r *core.Report) {
	fmt.Fprintln(w, "\n[REPORT SUMMARY]")
	fmt.Fprintf(w, "  Messages analyzed: %d\n", r.TotalMessages)
	fmt.Fprintf(w, "  Messages with markers: %d\n", r.MessagesWithMarkers)
	fmt.Fprintf(w, "  Total markers: %d\n", r.TotalMarkers)
	fmt.Fprintf(w, "  Average score: %s\n", format.Score(r.AverageScore))
	fmt.Fprintf(w, "  Agents: %s\n", strings.Join(r.Agents, ", "))
}

func printHighlights(w io.Writer, highlights []core.Highlight, n int) {
	if len(highlights) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTop %d:\n", min(n, len(highlights)))
	for i, h := range highlights {
		if i == n {
			break
		}
		fmt.Fprintf(w, "  %d. [%s] %s - Score: %s\n", i+1, severityLabel(h.Severity), valueOr(h.Sender, "Unknown"), format.Score(h.Score))
		preview := []rune(h.Text)
		if len(preview) > 100 {
			preview = preview[:100]
		}
		fmt.Fprintf(w, "     %s...\n", string(preview))
	}
}

func valueOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
