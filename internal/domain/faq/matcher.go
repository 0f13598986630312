package faq

import "strings"

// BestMatch scores a normalized query against every entry and returns the
// index of the most similar one with its cosine similarity in [0, 1].
// Ties, including the all-zero case of an empty or out-of-vocabulary query,
// resolve to the lowest index.
func (idx *Index) BestMatch(normalizedQuery string) (int, float64) {
	query := idx.vectorize(strings.Fields(normalizedQuery))
	best, bestScore := 0, 0.0
	for i, vec := range idx.vectors {
		score := cosine(query, vec)
		if i == 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

// Scores returns the similarity of a normalized query to every entry, in
// entry order.
func (idx *Index) Scores(normalizedQuery string) []float64 {
	query := idx.vectorize(strings.Fields(normalizedQuery))
	scores := make([]float64, len(idx.vectors))
	for i, vec := range idx.vectors {
		scores[i] = cosine(query, vec)
	}
	return scores
}

// cosine of two unit-length sparse vectors is their dot product. The zero
// vector scores 0 against everything.
func cosine(a, b sparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].dim == b[j].dim:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case a[i].dim < b[j].dim:
			i++
		default:
			j++
		}
	}
	switch {
	case dot < 0:
		return 0
	case dot > 1:
		return 1
	}
	return dot
}
