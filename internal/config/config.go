package config

import (
	"os"
	"strconv"

	"chartscout/internal/detect"
	"chartscout/internal/errors"
	"chartscout/internal/suggest"
)

// Config is the complete application configuration, loaded from
// environment variables at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional SQL source settings for the database
// loader. Empty URL disables the SQL source.
type DatabaseConfig struct {
	Driver string
	URL    string
}

// AnalysisConfig holds the tunable analysis policy. Defaults match the
// documented detection and scoring behavior.
type AnalysisConfig struct {
	CategoricalMaxRatio    float64
	CategoricalMaxDistinct int
	TextMinAvgLength       float64
	PieMaxDistinct         int
	HistogramMinDistinct   int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver: envOr("DATABASE_DRIVER", "postgres"),
			URL:    os.Getenv("DATABASE_URL"),
		},
		Analysis: AnalysisConfig{
			CategoricalMaxRatio:    envFloat("CATEGORICAL_MAX_RATIO", 0.5),
			CategoricalMaxDistinct: envInt("CATEGORICAL_MAX_DISTINCT", 50),
			TextMinAvgLength:       envFloat("TEXT_MIN_AVG_LENGTH", 30),
			PieMaxDistinct:         envInt("PIE_MAX_DISTINCT", 8),
			HistogramMinDistinct:   envInt("HISTOGRAM_MIN_DISTINCT", 20),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	a := c.Analysis
	if a.CategoricalMaxRatio <= 0 || a.CategoricalMaxRatio > 1 {
		return errors.ConfigInvalid("CATEGORICAL_MAX_RATIO must be in (0, 1]")
	}
	if a.CategoricalMaxDistinct < 1 {
		return errors.ConfigInvalid("CATEGORICAL_MAX_DISTINCT must be positive")
	}
	if a.TextMinAvgLength <= 0 {
		return errors.ConfigInvalid("TEXT_MIN_AVG_LENGTH must be positive")
	}
	if a.PieMaxDistinct < 1 {
		return errors.ConfigInvalid("PIE_MAX_DISTINCT must be positive")
	}
	if a.HistogramMinDistinct < 1 {
		return errors.ConfigInvalid("HISTOGRAM_MIN_DISTINCT must be positive")
	}
	return nil
}

// DetectorConfig maps the analysis policy onto the detector's config.
func (c *Config) DetectorConfig() detect.Config {
	dc := detect.DefaultConfig()
	dc.CategoricalMaxRatio = c.Analysis.CategoricalMaxRatio
	dc.CategoricalMaxDistinct = c.Analysis.CategoricalMaxDistinct
	dc.TextMinAvgLength = c.Analysis.TextMinAvgLength
	return dc
}

// SuggestConfig maps the analysis policy onto the suggestion engine's
// config.
func (c *Config) SuggestConfig() suggest.Config {
	sc := suggest.DefaultConfig()
	sc.PieMaxDistinct = c.Analysis.PieMaxDistinct
	sc.HistogramMinDistinct = c.Analysis.HistogramMinDistinct
	return sc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
