package config

import (
	"fmt"

	"github.com/spf13/cast"
)

// SourceConfig represents the configuration for the message source
type SourceConfig struct {
	Type        string
	Table       string
	SQLitePath  string
	MySQLDSN    string
	PostgresDSN string
	JSONLPath   string
}

// AnalysisConfig represents the configuration for the classifier and aggregator
type AnalysisConfig struct {
	Workers      int
	TopN         int
	TaxonomyFile string
	Weights      map[string]float64
}

// ExportConfig represents the configuration for artifact export
type ExportConfig struct {
	Type      string
	OutputDir string
	S3Bucket  string
	S3Prefix  string
	S3Region  string
}

// ServerConfig represents the configuration for the HTTP API
type ServerConfig struct {
	ListenAddress string
	MaxBodyBytes  int64
}

// GetSource returns the message source configuration
func (c *Config) GetSource() SourceConfig {
	return SourceConfig{
		Type:        c.GetString("source.type"),
		Table:       c.GetString("source.table"),
		SQLitePath:  c.GetString("source.sqlite_path"),
		MySQLDSN:    c.GetString("source.mysql_dsn"),
		PostgresDSN: c.GetString("source.postgres_dsn"),
		JSONLPath:   c.GetString("source.jsonl_path"),
	}
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() (AnalysisConfig, error) {
	weights := make(map[string]float64)
	for name, raw := range c.v.GetStringMap("analysis.weights") {
		w, err := cast.ToFloat64E(raw)
		if err != nil {
			return AnalysisConfig{}, fmt.Errorf("invalid weight for %s: %w", name, err)
		}
		weights[name] = w
	}
	return AnalysisConfig{
		Workers:      c.GetInt("analysis.workers"),
		TopN:         c.GetInt("analysis.top_n"),
		TaxonomyFile: c.GetString("analysis.taxonomy_file"),
		Weights:      weights,
	}, nil
}

// GetExport returns the export configuration
func (c *Config) GetExport() ExportConfig {
	return ExportConfig{
		Type:      c.GetString("export.type"),
		OutputDir: c.GetString("export.output_dir"),
		S3Bucket:  c.GetString("export.s3_bucket"),
		S3Prefix:  c.GetString("export.s3_prefix"),
		S3Region:  c.GetString("export.s3_region"),
	}
}

// GetServer returns the HTTP API configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		MaxBodyBytes:  c.GetInt64("server.max_body_bytes"),
	}
}
