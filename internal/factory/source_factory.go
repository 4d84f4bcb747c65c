package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/markerscan/internal/adapters/source"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"go.uber.org/zap"
)

// SourceFactory creates message sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageSource opens the configured message source. A store that
// cannot be reached is not fatal: it is logged and replaced by a source
// whose fetches report core.ErrSourceUnavailable.
func (f *SourceFactory) CreateMessageSource(ctx context.Context) (core.MessageSource, error) {
	srcCfg := f.cfg.GetSource()

	if timeout, err := f.cfg.GetDuration("source.timeout"); err == nil && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		src core.MessageSource
		err error
	)
	switch srcCfg.Type {
	case "sqlite":
		src, err = source.NewSQLiteSource(srcCfg.SQLitePath, srcCfg.Table, f.logger)
	case "mysql":
		src, err = source.NewMySQLSource(ctx, srcCfg.MySQLDSN, srcCfg.Table, f.logger)
	case "postgres":
		src, err = source.NewPostgresSource(ctx, srcCfg.PostgresDSN, srcCfg.Table, f.logger)
	case "jsonl":
		src, err = source.NewJSONLSource(srcCfg.JSONLPath, f.logger)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", srcCfg.Type)
	}

	if err != nil {
		if errors.Is(err, core.ErrSourceUnavailable) {
			f.logger.Warn("Message source unavailable", zap.String("type", srcCfg.Type), zap.Error(err))
			return source.NewUnavailableSource(err), nil
		}
		return nil, err
	}

	f.logger.Debug("Opened message source", zap.String("type", srcCfg.Type))
	return src, nil
}
