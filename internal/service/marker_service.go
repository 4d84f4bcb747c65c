package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikey/markerscan/internal/aggregate"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/format"
	"github.com/mikey/markerscan/internal/significance"
	"github.com/mikey/markerscan/internal/utils"
	"go.uber.org/zap"
)

// ErrNoExporter is returned when an export is requested without a destination
var ErrNoExporter = errors.New("no exporter configured")

// MarkerService composes the classifier, the message source, the
// aggregator and the exporter into the operations the CLI and API expose
type MarkerService struct {
	analyzer core.Analyzer
	source   core.MessageSource
	exporter core.Exporter
	text     *utils.TextProcessor
	logger   *zap.Logger
	workers  int
	topN     int
	now      func() time.Time
}

// NewMarkerService creates a new marker service. source and exporter may be nil.
func NewMarkerService(
	analyzer core.Analyzer,
	source core.MessageSource,
	exporter core.Exporter,
	logger *zap.Logger,
	workers int,
	topN int,
) *MarkerService {
	if topN <= 0 {
		topN = aggregate.DefaultTopN
	}
	return &MarkerService{
		analyzer: analyzer,
		source:   source,
		exporter: exporter,
		text:     utils.NewTextProcessor(logger),
		logger:   logger,
		workers:  workers,
		topN:     topN,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock used for report stamps
func (s *MarkerService) WithClock(now func() time.Time) *MarkerService {
	s.now = now
	return s
}

// TopN returns the configured number of top moments
func (s *MarkerService) TopN() int {
	return s.topN
}

// Analyze classifies a single text
func (s *MarkerService) Analyze(text string, timestamp, sender *string) *core.AnalysisResult {
	return s.analyzer.Analyze(text, timestamp, sender)
}

// AnalyzeMessages classifies a batch of already loaded messages
func (s *MarkerService) AnalyzeMessages(ctx context.Context, msgs []core.Message) ([]*core.AnalysisResult, error) {
	cleaned := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		m.Content = s.text.ProcessText(m.Content)
		cleaned = append(cleaned, m)
	}
	return s.analyzer.AnalyzeBatch(ctx, cleaned, s.workers)
}

// Scan fetches messages from the source and classifies them, keeping
// results scoring at least minScore. An unavailable source yields an
// empty batch, not an error.
func (s *MarkerService) Scan(ctx context.Context, q core.Query, minScore float64) ([]*core.AnalysisResult, error) {
	if s.source == nil {
		s.logger.Warn("No message source configured, returning empty batch")
		return []*core.AnalysisResult{}, nil
	}

	msgs, err := s.source.Fetch(ctx, q)
	if err != nil {
		if errors.Is(err, core.ErrSourceUnavailable) {
			s.logger.Warn("Message source unavailable, returning empty batch", zap.Error(err))
			return []*core.AnalysisResult{}, nil
		}
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	results, err := s.AnalyzeMessages(ctx, msgs)
	if err != nil {
		return nil, err
	}
	kept := significance.FilterByScore(results, minScore)

	s.logger.Info("Scanned messages",
		zap.Int("fetched", len(msgs)),
		zap.Int("kept", len(kept)),
		zap.Float64("min_score", minScore))
	return kept, nil
}

// Summarize builds a report over results. topN <= 0 uses the configured default.
func (s *MarkerService) Summarize(results []*core.AnalysisResult, topN int) *core.Report {
	if topN <= 0 {
		topN = s.topN
	}
	return aggregate.Summarize(results, topN, s.now())
}

// Report scans the source and summarizes the batch
func (s *MarkerService) Report(ctx context.Context, q core.Query, topN int) (*core.Report, error) {
	results, err := s.Scan(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	return s.Summarize(results, topN), nil
}

// Highlights scans the source and keeps results at or above threshold
func (s *MarkerService) Highlights(ctx context.Context, q core.Query, threshold core.Severity) ([]core.Highlight, error) {
	results, err := s.Scan(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	return significance.FilterBySeverity(results, threshold), nil
}

// Timeline scans the source and builds the timeline export document
func (s *MarkerService) Timeline(ctx context.Context, q core.Query) (*core.TimelineExport, error) {
	results, err := s.Scan(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	return format.TimelineExport(results, s.now()), nil
}

// ExportJSON renders v as JSON and hands it to the exporter
func (s *MarkerService) ExportJSON(ctx context.Context, name string, v any) (string, error) {
	data, err := format.JSON(v)
	if err != nil {
		return "", err
	}
	return s.export(ctx, name, data)
}

// ExportReport writes report as Markdown when name ends in .md, JSON otherwise
func (s *MarkerService) ExportReport(ctx context.Context, name string, report *core.Report) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return s.export(ctx, name, []byte(format.Markdown(report)))
	}
	return s.ExportJSON(ctx, name, report)
}

// DefaultName returns a timestamped export name for kind
func (s *MarkerService) DefaultName(kind, ext string) string {
	return format.FileName(kind, ext, s.now())
}

func (s *MarkerService) export(ctx context.Context, name string, data []byte) (string, error) {
	if s.exporter == nil {
		return "", ErrNoExporter
	}
	location, err := s.exporter.Export(ctx, name, data)
	if err != nil {
		return "", err
	}
	s.logger.Info("Exported artifact", zap.String("location", location))
	return location, nil
}
