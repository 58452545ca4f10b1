package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/internal/port"
)

func TestReduce_AveragesChunks(t *testing.T) {
	vec := []float32{1, 3, 5, 7}

	got := Reduce(vec, 2)
	assert.Equal(t, []float32{2, 6}, got)
}

func TestReduce_UnevenChunks(t *testing.T) {
	vec := []float32{2, 4, 6}

	got := Reduce(vec, 2)
	require.Len(t, got, 2)
	// Slot boundaries follow i*target/len: [2 4] then [6].
	assert.InDelta(t, 3.0, got[0], 1e-6)
	assert.InDelta(t, 6.0, got[1], 1e-6)
}

func TestReduce_NoOpAtOrBelowTarget(t *testing.T) {
	vec := []float32{1, 2, 3}
	assert.Equal(t, vec, Reduce(vec, 3))
	assert.Equal(t, vec, Reduce(vec, 8))
	assert.Equal(t, vec, Reduce(vec, 0))
}

func TestReduce_Deterministic(t *testing.T) {
	vec := make([]float32, 1024)
	for i := range vec {
		vec[i] = float32(i % 17)
	}
	assert.Equal(t, Reduce(vec, 64), Reduce(vec, 64))
}

func TestFitDimension(t *testing.T) {
	vec := []float32{1, 2, 3, 4}

	fitted, err := FitDimension("m", vec, 2)
	require.NoError(t, err)
	assert.Len(t, fitted, 2)

	native, err := FitDimension("m", vec, 0)
	require.NoError(t, err)
	assert.Equal(t, vec, native)

	_, err = FitDimension("m", vec, 8)
	assert.True(t, errors.Is(err, port.ErrDimensionMismatch))
}
