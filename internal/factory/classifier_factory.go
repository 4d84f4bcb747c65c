package factory

import (
	"github.com/mikey/markerscan/internal/classifier"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/taxonomy"
	"go.uber.org/zap"
)

// ClassifierFactory builds the classifier from the configured taxonomy
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// LoadTaxonomy returns the built-in taxonomy, or the configured file,
// with any weight overrides applied
func (f *ClassifierFactory) LoadTaxonomy() ([]core.Category, error) {
	analysis, err := f.cfg.GetAnalysis()
	if err != nil {
		return nil, err
	}

	cats := taxonomy.Default()
	if analysis.TaxonomyFile != "" {
		cats, err = taxonomy.LoadFile(analysis.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		f.logger.Info("Loaded taxonomy file", zap.String("file", analysis.TaxonomyFile), zap.Int("categories", len(cats)))
	}

	if len(analysis.Weights) > 0 {
		cats, err = taxonomy.ApplyWeights(cats, analysis.Weights)
		if err != nil {
			return nil, err
		}
		f.logger.Info("Applied weight overrides", zap.Int("overrides", len(analysis.Weights)))
	}
	return cats, nil
}

// CreateClassifier compiles the taxonomy. Invalid patterns fail here,
// before any message is read.
func (f *ClassifierFactory) CreateClassifier() (*classifier.Classifier, error) {
	cats, err := f.LoadTaxonomy()
	if err != nil {
		return nil, err
	}
	return classifier.New(cats, f.logger)
}
