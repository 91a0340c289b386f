package config

import (
	"testing"

	"chartscout/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Analysis.CategoricalMaxRatio)
	assert.Equal(t, 50, cfg.Analysis.CategoricalMaxDistinct)
	assert.Equal(t, 8, cfg.Analysis.PieMaxDistinct)
	assert.Equal(t, 20, cfg.Analysis.HistogramMinDistinct)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATEGORICAL_MAX_DISTINCT", "10")
	t.Setenv("PIE_MAX_DISTINCT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Analysis.CategoricalMaxDistinct)
	assert.Equal(t, 5, cfg.SuggestConfig().PieMaxDistinct)
	assert.Equal(t, 10, cfg.DetectorConfig().CategoricalMaxDistinct)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CATEGORICAL_MAX_RATIO", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestEnvParseFallback(t *testing.T) {
	t.Setenv("HISTOGRAM_MIN_DISTINCT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Analysis.HistogramMinDistinct)
}
