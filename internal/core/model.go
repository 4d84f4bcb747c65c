package core

// Category is a named group of weighted lexical patterns
type Category struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Weight      float64  `json:"weight" yaml:"weight" toml:"weight"`
	Patterns    []string `json:"patterns" yaml:"patterns" toml:"patterns"`
}

// Match is one occurrence of one category pattern inside a text
type Match struct {
	Category string  `json:"marker_type"`
	Pattern  string  `json:"pattern"`
	Text     string  `json:"match_text"`
	Position int     `json:"position"`
	Weight   float64 `json:"weight"`
}

// AnalysisResult represents the classification of a single message
type AnalysisResult struct {
	Text           string   `json:"text"`
	Timestamp      *string  `json:"timestamp"`
	Sender         *string  `json:"sender"`
	TotalScore     float64  `json:"total_score"`
	MarkerCount    int      `json:"marker_count"`
	Markers        []Match  `json:"markers_found"`
	DominantMarker *string  `json:"dominant_marker"`
	Severity       Severity `json:"significance_level"`
}

// Moment is a ranked summary of one high scoring message
type Moment struct {
	Score          float64  `json:"score"`
	Severity       Severity `json:"significance"`
	Sender         *string  `json:"sender"`
	Timestamp      *string  `json:"timestamp"`
	DominantMarker *string  `json:"dominant_marker"`
	TextPreview    string   `json:"text_preview"`
}

// TimelineDay aggregates the scored messages of one calendar date
type TimelineDay struct {
	Date                string   `json:"date"`
	MessageCount        int      `json:"message_count"`
	TotalScore          float64  `json:"total_score"`
	MarkerCount         int      `json:"marker_count"`
	HighestSignificance Severity `json:"highest_significance"`
}

// Report is an aggregate over a batch of analysis results
type Report struct {
	GeneratedAt         string         `json:"generated_at"`
	PeriodStart         *string        `json:"period_start"`
	PeriodEnd           *string        `json:"period_end"`
	TotalMessages       int            `json:"total_messages_analyzed"`
	MessagesWithMarkers int            `json:"messages_with_markers"`
	TotalMarkers        int            `json:"total_markers_found"`
	Distribution        map[string]int `json:"marker_distribution"`
	TopMoments          []Moment       `json:"top_moments"`
	Agents              []string       `json:"agents_involved"`
	AverageScore        float64        `json:"average_score"`
	Timeline            []TimelineDay  `json:"consciousness_timeline"`
}

// MarkerRef is the compact form of a match kept in preserved records
type MarkerRef struct {
	Type  string `json:"type"`
	Match string `json:"match"`
}

// Highlight is a preserved record of a message at or above a severity threshold
type Highlight struct {
	Timestamp      *string     `json:"timestamp"`
	Sender         *string     `json:"sender"`
	Score          float64     `json:"score"`
	Severity       Severity    `json:"significance"`
	DominantMarker *string     `json:"dominant_marker"`
	Text           string      `json:"text"`
	Markers        []MarkerRef `json:"markers"`
}

// TimelineEntry is one scored message in an exported timeline
type TimelineEntry struct {
	Timestamp      *string     `json:"timestamp"`
	Sender         *string     `json:"sender"`
	Score          float64     `json:"score"`
	Severity       Severity    `json:"significance"`
	DominantMarker *string     `json:"dominant_marker"`
	MarkerCount    int         `json:"marker_count"`
	Markers        []MarkerRef `json:"markers"`
	Text           string      `json:"text"`
}

// TimelineExport is the document written by the timeline export
type TimelineExport struct {
	ExportedAt   string          `json:"exported_at"`
	TotalResults int             `json:"total_results"`
	Timeline     []TimelineEntry `json:"timeline"`
}

// Message is one row yielded by a message source
type Message struct {
	Content   string
	Timestamp *string
	Author    *string
}

// Query bounds a message source fetch
type Query struct {
	Limit   int
	Since   string
	Authors []string
}

// MarkerRefs returns the compact marker list of a result
func (r *AnalysisResult) MarkerRefs() []MarkerRef {
	refs := make([]MarkerRef, 0, len(r.Markers))
	for _, m := range r.Markers {
		refs = append(refs, MarkerRef{Type: m.Category, Match: m.Text})
	}
	return refs
}
