package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/markerscan/internal/adapters/httpapi"
	"github.com/mikey/markerscan/internal/classifier"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/factory"
	"github.com/mikey/markerscan/internal/ports"
	"github.com/mikey/markerscan/internal/service"
)

// BuildContainer registers every component downstream of the
// configuration and logger. Components are built lazily on Invoke, so
// a command that only classifies text never opens the message store.
func BuildContainer(cfg *config.Config, logger *zap.Logger) (*dig.Container, error) {
	container := dig.New()

	// Register configuration and logger
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() *zap.Logger { return logger }); err != nil {
		return nil, err
	}

	// Register analysis settings
	if err := container.Provide(func(cfg *config.Config) (config.AnalysisConfig, error) {
		return cfg.GetAnalysis()
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExporterFactory); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (*classifier.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(c *classifier.Classifier) core.Analyzer { return c }); err != nil {
		return nil, err
	}

	// Register message source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MessageSource, error) {
		return f.CreateMessageSource(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register exporter
	if err := container.Provide(func(f *factory.ExporterFactory) (core.Exporter, error) {
		return f.CreateExporter(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register marker service
	if err := container.Provide(func(
		analyzer core.Analyzer,
		source core.MessageSource,
		exporter core.Exporter,
		logger *zap.Logger,
		analysis config.AnalysisConfig,
	) *service.MarkerService {
		return service.NewMarkerService(analyzer, source, exporter, logger, analysis.Workers, analysis.TopN)
	}); err != nil {
		return nil, err
	}

	// Register HTTP API
	if err := container.Provide(func(svc *service.MarkerService, logger *zap.Logger, cfg *config.Config) ports.Server {
		return httpapi.NewServer(svc, logger, cfg.GetServer())
	}); err != nil {
		return nil, err
	}

	return container, nil
}
