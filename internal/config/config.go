package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a configuration from the first config.yaml found on the
// search path, the environment and a .env file in the working directory
func New() (*Config, error) {
	return NewFromFile("")
}

// NewFromFile creates a configuration from an explicit file. An empty
// path falls back to the default search locations.
func NewFromFile(path string) (*Config, error) {
	// .env only seeds the environment; a missing file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/markerscan/")
		v.AddConfigPath("$HOME/.markerscan")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("MARKERSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Message source defaults
	v.SetDefault("source.type", "sqlite")
	v.SetDefault("source.table", "messages")
	v.SetDefault("source.sqlite_path", "data/comms.db")
	v.SetDefault("source.mysql_dsn", "user:password@tcp(localhost:3306)/comms")
	v.SetDefault("source.postgres_dsn", "postgres://localhost:5432/comms")
	v.SetDefault("source.jsonl_path", "messages.jsonl")
	v.SetDefault("source.timeout", "30s")

	// Analysis defaults
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("analysis.top_n", 10)
	v.SetDefault("analysis.taxonomy_file", "")
	v.SetDefault("analysis.weights", map[string]float64{})

	// Export defaults
	v.SetDefault("export.type", "file")
	v.SetDefault("export.output_dir", "consciousness_markers")
	v.SetDefault("export.s3_bucket", "")
	v.SetDefault("export.s3_prefix", "consciousness-markers/")
	v.SetDefault("export.s3_region", "us-east-1")

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
