package core

import (
	"context"
	"errors"
)

var (
	// ErrSourceUnavailable is returned when the message store cannot be reached
	ErrSourceUnavailable = errors.New("message source unavailable")
	// ErrUnknownSeverity is returned when a tier name cannot be parsed
	ErrUnknownSeverity = errors.New("unknown severity")
)

// Analyzer classifies message text against a compiled taxonomy
type Analyzer interface {
	// Analyze classifies a single text
	Analyze(text string, timestamp, sender *string) *AnalysisResult

	// AnalyzeBatch classifies messages in parallel, preserving input order
	AnalyzeBatch(ctx context.Context, msgs []Message, workers int) ([]*AnalysisResult, error)
}

// MessageSource yields stored messages for analysis
type MessageSource interface {
	// Fetch returns up to q.Limit messages, newest first
	Fetch(ctx context.Context, q Query) ([]Message, error)

	// Close releases the underlying store
	Close() error
}

// Exporter persists rendered artifacts
type Exporter interface {
	// Export writes data under the given name and returns where it landed
	Export(ctx context.Context, name string, data []byte) (string, error)
}
