package ai

import "math"

// Cosine returns the cosine similarity of two normalized vectors, the
// dot product over their shared length. Range is [-1, 1]; mismatched
// lengths are truncated to the shorter vector.
func Cosine(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var sum float32
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return float64(sum)
}

// Normalize scales a vector to unit L2 norm in place and returns it.
// A zero vector is returned unchanged.
func Normalize(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}
	norm := float32(1.0 / math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] *= norm
	}
	return vec
}
