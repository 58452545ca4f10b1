package embedding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/internal/port"
)

func TestCombine_SingleGeneratorIdentity(t *testing.T) {
	gen := NewEnhancedGenerator(testConfig(32))
	vec := gen.Generate(NewWordIndex(), usersRequest())

	combined, err := Combine(32, []WeightedVector{
		{Name: GeneratorEnhanced, Vector: vec, Weight: 1},
	})
	require.NoError(t, err)

	for i := range vec {
		assert.InDelta(t, vec[i], combined[i], 1e-6)
	}
}

func TestCombine_ZeroWeightExcluded(t *testing.T) {
	cfg := testConfig(32)
	idx := NewWordIndex()
	a := NewEnhancedGenerator(cfg).Generate(idx, usersRequest())
	b := NewForeignKeyAwareGenerator(cfg).Generate(idx, usersRequest())

	withB, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 1},
		{Name: "b", Vector: b, Weight: 0},
	})
	require.NoError(t, err)

	withoutB, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, withoutB, withB)
}

func TestCombine_UniformRescalingAbsorbed(t *testing.T) {
	cfg := testConfig(32)
	idx := NewWordIndex()
	a := NewEnhancedGenerator(cfg).Generate(idx, usersRequest())
	b := NewPrimaryKeyAwareGenerator(cfg).Generate(idx, usersRequest())

	once, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 1},
		{Name: "b", Vector: b, Weight: 2},
	})
	require.NoError(t, err)

	scaled, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 3},
		{Name: "b", Vector: b, Weight: 6},
	})
	require.NoError(t, err)

	for i := range once {
		assert.InDelta(t, once[i], scaled[i], 1e-5)
	}
}

func TestCombine_RelativeReweightingMatters(t *testing.T) {
	cfg := testConfig(32)
	idx := NewWordIndex()
	a := NewEnhancedGenerator(cfg).Generate(idx, usersRequest())
	b := NewPrimaryKeyAwareGenerator(cfg).Generate(idx, usersRequest())

	even, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 1},
		{Name: "b", Vector: b, Weight: 1},
	})
	require.NoError(t, err)

	skewed, err := Combine(32, []WeightedVector{
		{Name: "a", Vector: a, Weight: 1},
		{Name: "b", Vector: b, Weight: 5},
	})
	require.NoError(t, err)
	assert.NotEqual(t, even, skewed)
}

func TestCombine_DimensionMismatch(t *testing.T) {
	_, err := Combine(8, []WeightedVector{
		{Name: "a", Vector: make([]float32, 8), Weight: 1},
		{Name: "b", Vector: make([]float32, 4), Weight: 1},
	})
	assert.True(t, errors.Is(err, port.ErrDimensionMismatch))
}

func TestCombine_NoPartsYieldsZeroVector(t *testing.T) {
	combined, err := Combine(4, nil)
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 4), combined)
}

func TestEngine_CombineUsesConfiguredWeights(t *testing.T) {
	cfg := testConfig(32)
	cfg.GeneratorWeights = map[string]float32{
		GeneratorEnhanced: 1,
		// primary_key and foreign_key unlisted: weight 0, excluded.
	}
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	idx := NewWordIndex()
	vectors := engine.RunAll(idx, usersRequest())

	combined, err := engine.Combine(vectors)
	require.NoError(t, err)

	enhanced := vectors[GeneratorEnhanced]
	for i := range enhanced {
		assert.InDelta(t, enhanced[i], combined[i], 1e-6)
	}
}
