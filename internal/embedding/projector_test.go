package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magnitude(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestAccumulate_ModuloHashing(t *testing.T) {
	vec := make([]float32, 4)

	Accumulate(vec, 1, 2)
	Accumulate(vec, 5, 3) // collides with slot 1
	Accumulate(vec, 0, 1)

	assert.Equal(t, []float32{1, 5, 0, 0}, vec)
}

func TestNormalize_UnitMagnitude(t *testing.T) {
	vecs := [][]float32{
		{3, 4},
		{1, 1, 1, 1},
		{0.5, 0, 0, 2.5, 7},
		{42},
	}
	for _, vec := range vecs {
		Normalize(vec)
		assert.InDelta(t, 1.0, magnitude(vec), 1e-6)
	}
}

func TestNormalize_ZeroVectorUnchanged(t *testing.T) {
	vec := make([]float32, 8)
	got := Normalize(vec)
	assert.Equal(t, make([]float32, 8), got)
}

func TestCosine(t *testing.T) {
	same, err := Cosine([]float32{1, 2, 3}, []float32{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, same, 1e-6)

	orthogonal, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, orthogonal, 1e-6)

	zero, err := Cosine([]float32{0, 0}, []float32{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	_, err = Cosine([]float32{1}, []float32{1, 2})
	assert.Error(t, err)
}
