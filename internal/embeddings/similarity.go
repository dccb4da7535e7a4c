// Package embeddings holds vector math and the binary vector codec used by
// the embedding cache.
package embeddings

import (
	"math"

	"github.com/pkg/errors"
)

// CosineSimilarity calculates the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Errorf("vectors must have same length: %d vs %d", len(a), len(b))
	}

	if len(a) == 0 {
		return 0, errors.New("vectors cannot be empty")
	}

	normA := Magnitude(a)
	normB := Magnitude(b)
	if normA == 0 || normB == 0 {
		return 0, errors.New("vector norm cannot be zero")
	}

	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}

	// clamp float error
	return math.Max(-1, math.Min(1, dot/(normA*normB))), nil
}

// Magnitude calculates the Euclidean norm of a vector
func Magnitude(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Scores returns the similarity of every candidate to query. Candidates
// that cannot be compared score -1.
func Scores(query []float64, candidates [][]float64) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		s, err := CosineSimilarity(query, c)
		if err != nil {
			s = -1
		}
		scores[i] = s
	}
	return scores
}
