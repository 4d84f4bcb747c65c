// Package classifier scores message text against a compiled marker taxonomy.
package classifier

import (
	"context"
	"runtime"
	"unicode/utf8"

	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Classifier finds marker occurrences in text and derives a score and
// severity. It holds no mutable state after construction.
type Classifier struct {
	compiled *Compiled
	text     *utils.TextProcessor
	logger   *zap.Logger
}

// New compiles cats and returns a ready classifier
func New(cats []core.Category, logger *zap.Logger) (*Classifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	compiled, err := Compile(cats)
	if err != nil {
		return nil, err
	}
	logger.Debug("Compiled marker taxonomy",
		zap.Strings("categories", compiled.Categories()),
		zap.Int("patterns", compiled.PatternCount()))

	return &Classifier{
		compiled: compiled,
		text:     utils.NewTextProcessor(logger),
		logger:   logger,
	}, nil
}

// Analyze classifies a single text. It never fails: every string,
// including the empty one, yields a result.
func (c *Classifier) Analyze(text string, timestamp, sender *string) *core.AnalysisResult {
	var (
		markers  []core.Match
		score    float64
		dominant *string
		best     int
	)

	for _, cat := range c.compiled.categories {
		count := 0
		for _, p := range cat.patterns {
			byteOff, runeOff := 0, 0
			for _, loc := range p.re.FindAllStringIndex(text, -1) {
				// zero-width matches carry no text and are not markers
				if loc[0] == loc[1] {
					continue
				}
				runeOff += utf8.RuneCountInString(text[byteOff:loc[0]])
				byteOff = loc[0]
				markers = append(markers, core.Match{
					Category: cat.name,
					Pattern:  p.source,
					Text:     text[loc[0]:loc[1]],
					Position: runeOff,
					Weight:   cat.weight,
				})
				score += cat.weight
				count++
			}
		}
		// strict comparison keeps the first declared category on ties
		if count > best {
			best = count
			name := cat.name
			dominant = &name
		}
	}

	if markers == nil {
		markers = []core.Match{}
	}

	return &core.AnalysisResult{
		Text:           c.text.TruncateText(text, utils.StoredTextLimit),
		Timestamp:      timestamp,
		Sender:         sender,
		TotalScore:     utils.Round2(score),
		MarkerCount:    len(markers),
		Markers:        markers,
		DominantMarker: dominant,
		Severity:       core.SeverityFor(score, len(markers)),
	}
}

// AnalyzeBatch classifies msgs concurrently with at most workers
// goroutines. Results are returned in input order.
func (c *Classifier) AnalyzeBatch(ctx context.Context, msgs []core.Message, workers int) ([]*core.AnalysisResult, error) {
	results := make([]*core.AnalysisResult, len(msgs))
	if len(msgs) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(msgs)))
	for i, msg := range msgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Analyze(msg.Content, msg.Timestamp, msg.Author)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("Analyzed message batch",
		zap.Int("messages", len(msgs)),
		zap.Int("workers", workers))
	return results, nil
}
