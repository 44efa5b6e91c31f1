package vectormath

import "math"

// CosineSimilarity returns the cosine of the angle between a and b.
// Malformed input (length mismatch, empty, or zero-magnitude vectors) yields 0
// rather than an error: stored embeddings can be missing or truncated, and a
// non-match is the correct retrieval outcome for such rows.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize scales v to unit length. The zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var magnitude float64
	for _, x := range v {
		magnitude += float64(x) * float64(x)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, x := range v {
		normalized[i] = float32(float64(x) / magnitude)
	}
	return normalized
}
