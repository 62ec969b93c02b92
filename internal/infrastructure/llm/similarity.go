package llm

import "math"

// cosineSimilarity compares two embedding vectors. The shorter vector is
// treated as zero-padded to the longer one's length, mirroring the
// neutral padding the detection algorithm prescribes.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		var va, vb float64
		if i < len(a) {
			va = float64(a[i])
		}
		if i < len(b) {
			vb = float64(b[i])
		}
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// effortScore maps similarity from [-1,1] onto [0,1].
func effortScore(similarity float64) float64 {
	return (similarity + 1) / 2
}
