// Package export writes rendered artifacts to their destinations.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileExporter writes artifacts into a local output directory
type FileExporter struct {
	dir    string
	logger *zap.Logger
}

// NewFileExporter creates an exporter rooted at dir, creating it if needed
func NewFileExporter(dir string, logger *zap.Logger) (*FileExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileExporter{
		dir:    dir,
		logger: logger,
	}, nil
}

// Export writes data to name inside the output directory. Absolute
// names are written as given.
func (e *FileExporter) Export(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("file export: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("file export: write %s: %w", path, err)
	}

	e.logger.Debug("Exported artifact", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}
