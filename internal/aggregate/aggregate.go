// Package aggregate rolls analysis results up into reports.
//
// Summarize is a single pass fold. Callers that shard a batch can build
// one Accumulator per shard and Merge them in batch order; the result
// is identical to summarizing the whole batch at once.
package aggregate

import (
	"sort"
	"time"

	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/utils"
)

// GeneratedAtLayout is the layout of Report.GeneratedAt
const GeneratedAtLayout = "2006-01-02T15:04:05.000000"

// DefaultTopN is the number of top moments kept when none is requested
const DefaultTopN = 10

type candidate struct {
	seq    int
	result *core.AnalysisResult
}

type day struct {
	messages int
	score    float64
	markers  int
	highest  core.Severity
}

// Accumulator folds analysis results into report statistics
type Accumulator struct {
	topN        int
	total       int
	withMarkers int
	markers     int
	dist        map[string]int
	agents      []string
	agentSeen   map[string]struct{}
	scoredSum   float64
	scoredCount int
	start       *string
	end         *string
	days        map[string]*day
	top         []candidate
}

// NewAccumulator creates an empty accumulator keeping topN moments
func NewAccumulator(topN int) *Accumulator {
	if topN < 0 {
		topN = 0
	}
	return &Accumulator{
		topN:      topN,
		dist:      make(map[string]int),
		agentSeen: make(map[string]struct{}),
		days:      make(map[string]*day),
	}
}

// Summarize builds a report over results
func Summarize(results []*core.AnalysisResult, topN int, now time.Time) *core.Report {
	acc := NewAccumulator(topN)
	for _, r := range results {
		acc.Add(r)
	}
	return acc.Report(now)
}

// Add folds one result into the accumulator
func (a *Accumulator) Add(r *core.AnalysisResult) {
	if r == nil {
		return
	}
	seq := a.total
	a.total++
	if r.MarkerCount > 0 {
		a.withMarkers++
	}
	a.markers += r.MarkerCount
	for _, m := range r.Markers {
		a.dist[m.Category]++
	}
	if r.Sender != nil && *r.Sender != "" {
		a.addAgent(*r.Sender)
	}
	if r.TotalScore > 0 {
		a.scoredSum += r.TotalScore
		a.scoredCount++
	}
	if r.Timestamp != nil {
		a.widenPeriod(*r.Timestamp, *r.Timestamp)
	}
	if r.TotalScore > 0 {
		if date, ok := DateKey(r.Timestamp); ok {
			d := a.day(date)
			d.messages++
			d.score += r.TotalScore
			d.markers += r.MarkerCount
			d.highest = max(d.highest, r.Severity)
		}
	}
	a.insertTop(candidate{seq: seq, result: r})
}

// Merge folds other into a as if other's results followed a's in the batch
func (a *Accumulator) Merge(other *Accumulator) {
	offset := a.total
	a.total += other.total
	a.withMarkers += other.withMarkers
	a.markers += other.markers
	for name, n := range other.dist {
		a.dist[name] += n
	}
	for _, agent := range other.agents {
		a.addAgent(agent)
	}
	a.scoredSum += other.scoredSum
	a.scoredCount += other.scoredCount
	if other.start != nil {
		a.widenPeriod(*other.start, *other.end)
	}
	for date, od := range other.days {
		d := a.day(date)
		d.messages += od.messages
		d.score += od.score
		d.markers += od.markers
		d.highest = max(d.highest, od.highest)
	}
	for _, c := range other.top {
		a.insertTop(candidate{seq: c.seq + offset, result: c.result})
	}
}

// Report renders the accumulated statistics
func (a *Accumulator) Report(now time.Time) *core.Report {
	report := &core.Report{
		GeneratedAt:         now.Format(GeneratedAtLayout),
		TotalMessages:       a.total,
		MessagesWithMarkers: a.withMarkers,
		TotalMarkers:        a.markers,
		Distribution:        make(map[string]int, len(a.dist)),
		TopMoments:          make([]core.Moment, 0, len(a.top)),
		Agents:              append([]string{}, a.agents...),
		Timeline:            make([]core.TimelineDay, 0, len(a.days)),
	}
	if a.start != nil {
		start, end := *a.start, *a.end
		report.PeriodStart, report.PeriodEnd = &start, &end
	}
	for name, n := range a.dist {
		report.Distribution[name] = n
	}
	for _, c := range a.top {
		r := c.result
		report.TopMoments = append(report.TopMoments, core.Moment{
			Score:          r.TotalScore,
			Severity:       r.Severity,
			Sender:         r.Sender,
			Timestamp:      r.Timestamp,
			DominantMarker: r.DominantMarker,
			TextPreview:    utils.Preview(r.Text),
		})
	}
	if a.scoredCount > 0 {
		report.AverageScore = utils.Round2(a.scoredSum / float64(a.scoredCount))
	}

	dates := make([]string, 0, len(a.days))
	for date := range a.days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		d := a.days[date]
		report.Timeline = append(report.Timeline, core.TimelineDay{
			Date:                date,
			MessageCount:        d.messages,
			TotalScore:          utils.Round2(d.score),
			MarkerCount:         d.markers,
			HighestSignificance: d.highest,
		})
	}
	return report
}

// DateKey returns the date bucket of a timestamp: its first ten
// characters, provided they form a YYYY-MM-DD date
func DateKey(timestamp *string) (string, bool) {
	if timestamp == nil || len(*timestamp) < 10 {
		return "", false
	}
	key := (*timestamp)[:10]
	if _, err := time.Parse(time.DateOnly, key); err != nil {
		return "", false
	}
	return key, true
}

func (a *Accumulator) addAgent(agent string) {
	if _, ok := a.agentSeen[agent]; ok {
		return
	}
	a.agentSeen[agent] = struct{}{}
	a.agents = append(a.agents, agent)
}

// widenPeriod extends the lexical period bounds
func (a *Accumulator) widenPeriod(start, end string) {
	if a.start == nil || start < *a.start {
		a.start = &start
	}
	if a.end == nil || end > *a.end {
		a.end = &end
	}
}

func (a *Accumulator) day(date string) *day {
	d, ok := a.days[date]
	if !ok {
		d = &day{}
		a.days[date] = d
	}
	return d
}

// insertTop keeps a.top ordered by score descending then batch order,
// capped at topN
func (a *Accumulator) insertTop(c candidate) {
	if a.topN == 0 {
		return
	}
	score := c.result.TotalScore
	i := sort.Search(len(a.top), func(i int) bool {
		t := a.top[i]
		if t.result.TotalScore != score {
			return t.result.TotalScore < score
		}
		return t.seq > c.seq
	})
	if i >= a.topN {
		return
	}
	a.top = append(a.top, candidate{})
	copy(a.top[i+1:], a.top[i:])
	a.top[i] = c
	if len(a.top) > a.topN {
		a.top = a.top[:a.topN]
	}
}
