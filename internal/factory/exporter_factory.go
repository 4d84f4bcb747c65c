package factory

import (
	"context"
	"fmt"

	"github.com/mikey/markerscan/internal/adapters/export"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// ExporterFactory creates artifact exporters based on configuration
type ExporterFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewExporterFactory creates a new exporter factory
func NewExporterFactory(cfg *config.Config, logger *zap.Logger) *ExporterFactory {
	return &ExporterFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExporter creates the configured exporter
func (f *ExporterFactory) CreateExporter(ctx context.Context) (core.Exporter, error) {
	expCfg := f.cfg.GetExport()

	switch expCfg.Type {
	case "file":
		return export.NewFileExporter(expCfg.OutputDir, f.logger)
	case "s3":
		return export.NewS3Exporter(ctx, expCfg.S3Bucket, expCfg.S3Prefix, expCfg.S3Region, f.logger)
	default:
		return nil, fmt.Errorf("unsupported export type: %s", expCfg.Type)
	}
}
