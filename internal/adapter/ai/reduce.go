package ai

import (
	"fmt"

	"github.com/schemalens/schemalens/internal/port"
)

// Reduce pools vec down to target dimensions by averaging contiguous chunks.
// Deterministic, no learned projection; vectors at or below the target length
// are returned unchanged.
func Reduce(vec []float32, target int) []float32 {
	if target <= 0 || len(vec) <= target {
		return vec
	}

	sums := make([]float32, target)
	counts := make([]int, target)
	for i, v := range vec {
		slot := i * target / len(vec)
		sums[slot] += v
		counts[slot]++
	}
	for i := range sums {
		sums[i] /= float32(counts[i])
	}
	return sums
}

// FitDimension reduces a model output vector to the target length, or fails
// when the model produces fewer dimensions than configured. A zero target
// accepts the model's native length.
func FitDimension(model string, vec []float32, target int) ([]float32, error) {
	if target <= 0 {
		return vec, nil
	}
	if len(vec) < target {
		return nil, fmt.Errorf("%w: model %s produced %d dimensions, want %d",
			port.ErrDimensionMismatch, model, len(vec), target)
	}
	return Reduce(vec, target), nil
}
