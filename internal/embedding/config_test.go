package embedding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/internal/port"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative size", func(c *Config) { c.Size = -4 }},
		{"decay at one", func(c *Config) { c.WindowDecay = 1 }},
		{"negative decay", func(c *Config) { c.WindowDecay = -0.1 }},
		{"unknown generator weight", func(c *Config) {
			c.GeneratorWeights = map[string]float32{"mystery": 1}
		}},
		{"negative generator weight", func(c *Config) {
			c.GeneratorWeights = map[string]float32{GeneratorEnhanced: -1}
		}},
		{"unknown override variant", func(c *Config) {
			c.WeightOverrides = map[string]WeightTable{"mystery": {}}
		}},
		{"negative table weight", func(c *Config) {
			c.WeightOverrides = map[string]WeightTable{
				GeneratorEnhanced: {Base: -1},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, port.ErrConfiguration), "got %v", err)
		})
	}
}

func TestConfigValidate_LearnedWeightAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GeneratorWeights[GeneratorLearned] = 0.5
	assert.NoError(t, cfg.Validate())
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	_, err := NewEngine(Config{Size: -1})
	assert.True(t, errors.Is(err, port.ErrConfiguration))
}

func TestConfig_WeightOverrideReplacesTable(t *testing.T) {
	cfg := testConfig(16)
	cfg.WeightOverrides = map[string]WeightTable{
		GeneratorPrimaryKey: {Base: 2},
	}
	require.NoError(t, cfg.Validate())

	table := cfg.weightTable(GeneratorPrimaryKey)
	assert.Equal(t, float32(2), table.Base)
	assert.Zero(t, table.PrimaryKeyExtra)

	// Untouched variants keep their defaults.
	assert.Equal(t, float32(15), cfg.weightTable(GeneratorForeignKey).ForeignKeyExtra)
}
