package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/logging"
)

// CLIFlags contains the global command line flags
type CLIFlags struct {
	ConfigFile   string
	Verbose      bool
	JSONLog      bool
	ServerMode   bool
	SourceType   string
	DBPath       string
	InputFile    string
	OutputDir    string
	TaxonomyFile string
	Workers      int
}

// BuildCLIContainer loads configuration, applies flag overrides, picks a
// logger and builds the container. Server mode logs per the config file;
// the other commands use a quiet console logger on stderr.
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	cfg, err := config.NewFromFile(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, flags)

	var logger *zap.Logger
	if flags.ServerMode && !flags.Verbose {
		logger, err = logging.InitLogger(cfg)
	} else {
		logger, err = logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}
	if err != nil {
		return nil, err
	}
	if used := cfg.GetViper().ConfigFileUsed(); used != "" {
		logger.Info("Loaded configuration from file", zap.String("file", used))
	}

	return BuildContainer(cfg, logger)
}

// applyFlags writes explicitly set flags over the loaded configuration
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	v := cfg.GetViper()

	if flags.InputFile != "" {
		v.Set("source.type", "jsonl")
		v.Set("source.jsonl_path", flags.InputFile)
	}
	if flags.SourceType != "" {
		v.Set("source.type", flags.SourceType)
	}
	if flags.DBPath != "" {
		v.Set("source.sqlite_path", flags.DBPath)
	}
	if flags.OutputDir != "" {
		v.Set("export.output_dir", flags.OutputDir)
	}
	if flags.TaxonomyFile != "" {
		v.Set("analysis.taxonomy_file", flags.TaxonomyFile)
	}
	if flags.Workers > 0 {
		v.Set("analysis.workers", flags.Workers)
	}
}
