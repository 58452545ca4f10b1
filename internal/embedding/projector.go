package embedding

import "math"

// Accumulate adds weight into the slot that wordIndex maps to under modulo
// hashing: vec[wordIndex % len(vec)] += weight. This is the hashing trick —
// different words may collide on a slot, and collisions are accepted rather
// than corrected, trading uniqueness for a fixed-size, bounded-cost vector.
func Accumulate(vec []float32, wordIndex int, weight float32) {
	if len(vec) == 0 {
		return
	}
	vec[wordIndex%len(vec)] += weight
}

// Normalize scales vec in place to unit Euclidean length and returns it.
// A zero-magnitude vector (the empty-input degenerate case) is returned
// unchanged instead of raising a division error.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / magnitude)
	}
	return vec
}

// Cosine computes the cosine similarity between two vectors of equal length.
// Zero-magnitude input yields similarity 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimensionError("cosine", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
