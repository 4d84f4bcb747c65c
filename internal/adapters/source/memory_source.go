package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mikey/markerscan/internal/authors"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// MemorySource serves messages held in memory. It applies the same
// filtering and ordering rules as the SQL sources.
type MemorySource struct {
	msgs   []core.Message
	logger *zap.Logger
}

// NewMemorySource creates a source over msgs
func NewMemorySource(msgs []core.Message, logger *zap.Logger) *MemorySource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemorySource{msgs: msgs, logger: logger}
}

// jsonlRecord is one line of a JSONL message export
type jsonlRecord struct {
	Content   *string `json:"content"`
	Timestamp *string `json:"timestamp"`
	Author    *string `json:"author"`
}

// NewJSONLSource loads messages from a JSON lines file with content,
// timestamp and author fields. A missing file is reported as
// core.ErrSourceUnavailable.
func NewJSONLSource(path string, logger *zap.Logger) (*MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: message file not found: %s", core.ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("failed to open message file: %w", err)
	}
	defer f.Close()

	var msgs []core.Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", path, line, err)
		}
		if rec.Content == nil {
			continue
		}
		msgs = append(msgs, core.Message{Content: *rec.Content, Timestamp: rec.Timestamp, Author: rec.Author})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message file: %w", err)
	}

	if logger != nil {
		logger.Debug("Loaded message file", zap.String("file", path), zap.Int("messages", len(msgs)))
	}
	return NewMemorySource(msgs, logger), nil
}

// Fetch returns up to q.Limit messages, newest first
func (s *MemorySource) Fetch(ctx context.Context, q core.Query) ([]core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter := authors.NewFilter(q.Authors, s.logger)
	out := make([]core.Message, 0, len(s.msgs))
	for _, m := range s.msgs {
		if m.Content == "" || !filter.Allows(m.Author) {
			continue
		}
		if q.Since != "" && (m.Timestamp == nil || *m.Timestamp < q.Since) {
			continue
		}
		out = append(out, m)
	}

	// newest first; messages without a timestamp sort last
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Timestamp, out[j].Timestamp
		if ti == nil || tj == nil {
			return ti != nil && tj == nil
		}
		return *ti > *tj
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Close is a no-op for the in-memory source
func (s *MemorySource) Close() error {
	return nil
}
