package embedding

import (
	"fmt"

	"github.com/schemalens/schemalens/internal/port"
)

// WeightedVector pairs a generator's output with its blend weight.
type WeightedVector struct {
	Name   string
	Vector []float32
	Weight float32
}

// Combine blends generator outputs into one normalized embedding: the
// elementwise weighted sum of all parts, re-normalized to unit length.
// Every part must have exactly size dimensions — combining vectors of
// different lengths is a configuration error, reported as
// port.ErrDimensionMismatch. Parts with weight 0 are excluded from the sum,
// not rejected.
//
// Normalization absorbs any uniform positive rescaling of the weights; only
// the relative weighting between generators matters.
func Combine(size int, parts []WeightedVector) ([]float32, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: combine size must be positive, got %d", port.ErrConfiguration, size)
	}
	out := make([]float32, size)
	for _, p := range parts {
		if len(p.Vector) != size {
			return nil, dimensionError(p.Name, len(p.Vector), size)
		}
		if p.Weight == 0 {
			continue
		}
		for i, v := range p.Vector {
			out[i] += p.Weight * v
		}
	}
	return Normalize(out), nil
}

func dimensionError(name string, got, want int) error {
	return fmt.Errorf("%w: %s has %d dimensions, want %d", port.ErrDimensionMismatch, name, got, want)
}
