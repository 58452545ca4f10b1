package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeights(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]float64
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "single pair",
			input: "enhanced=2",
			want:  map[string]float64{"enhanced": 2},
		},
		{
			name:  "multiple pairs with spaces",
			input: "enhanced=1, primary_key=0.5, learned=2",
			want:  map[string]float64{"enhanced": 1, "primary_key": 0.5, "learned": 2},
		},
		{
			name:  "malformed entries skipped",
			input: "enhanced=1,bogus,foreign_key=abc",
			want:  map[string]float64{"enhanced": 1},
		},
		{
			name:  "all malformed",
			input: "bogus,also-bogus",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWeights(tt.input))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "EMBEDDING_DIMENSION", "WINDOW_DECAY", "EMBEDDER_PROVIDER", "MCP_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 3072, cfg.EmbeddingDimension)
	assert.InDelta(t, 0.5, cfg.WindowDecay, 1e-9)
	assert.Equal(t, "none", cfg.EmbedderProvider)
	assert.True(t, cfg.MCPEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EMBEDDING_DIMENSION", "512")
	t.Setenv("WINDOW_DECAY", "0.25")
	t.Setenv("EMBEDDER_PROVIDER", "ollama")
	t.Setenv("GENERATOR_WEIGHTS", "enhanced=1,learned=3")

	cfg := Load()

	assert.Equal(t, 512, cfg.EmbeddingDimension)
	assert.InDelta(t, 0.25, cfg.WindowDecay, 1e-9)
	assert.Equal(t, "ollama", cfg.EmbedderProvider)
	assert.Equal(t, map[string]float64{"enhanced": 1, "learned": 3}, cfg.GeneratorWeights)
}
