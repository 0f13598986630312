package faq

import (
	"math"
	"sort"
	"strings"
)

// weightedTerm is one non-zero coordinate of a sparse vector.
type weightedTerm struct {
	dim    int
	weight float64
}

// sparseVector holds non-zero coordinates ordered by dimension.
type sparseVector []weightedTerm

// Index is the fitted tf-idf vector space over the knowledge base questions.
// The vocabulary is frozen at construction; queries never extend it.
type Index struct {
	questions  []string
	answers    []string
	normalized []string

	vocabulary map[string]int
	terms      []string
	idf        []float64
	vectors    []sparseVector
}

// BuildIndex normalizes every question and fits the term weights. Term weight
// is raw count times smoothed idf, ln((1+N)/(1+df))+1, and each entry vector
// is scaled to unit length.
func BuildIndex(entries []Entry, normalizer *Normalizer) (*Index, error) {
	if len(entries) == 0 {
		return nil, startupError("knowledge base has no entries", nil)
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}

	idx := &Index{
		questions:  make([]string, len(entries)),
		answers:    make([]string, len(entries)),
		normalized: make([]string, len(entries)),
	}
	tokenized := make([][]string, len(entries))
	docFreq := make(map[string]int)
	for i, entry := range entries {
		idx.questions[i] = entry.Question
		idx.answers[i] = entry.Answer
		tokens := normalizer.Tokens(entry.Question)
		tokenized[i] = tokens
		idx.normalized[i] = strings.Join(tokens, " ")

		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}
	if len(docFreq) == 0 {
		return nil, startupError("knowledge base vocabulary is empty after normalization", nil)
	}

	idx.terms = make([]string, 0, len(docFreq))
	for term := range docFreq {
		idx.terms = append(idx.terms, term)
	}
	sort.Strings(idx.terms)

	docCount := float64(len(entries))
	idx.vocabulary = make(map[string]int, len(idx.terms))
	idx.idf = make([]float64, len(idx.terms))
	for dim, term := range idx.terms {
		idx.vocabulary[term] = dim
		idx.idf[dim] = math.Log((1+docCount)/(1+float64(docFreq[term]))) + 1
	}

	idx.vectors = make([]sparseVector, len(entries))
	for i, tokens := range tokenized {
		idx.vectors[i] = idx.vectorize(tokens)
	}
	return idx, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.questions)
}

// Dimensions returns the size of the fitted vocabulary.
func (idx *Index) Dimensions() int {
	return len(idx.terms)
}

// Entry returns the entry at position i.
func (idx *Index) Entry(i int) Entry {
	return Entry{Question: idx.questions[i], Answer: idx.answers[i]}
}

// Normalized returns the normalized form of question i.
func (idx *Index) Normalized(i int) string {
	return idx.normalized[i]
}

// Vocabulary returns the fitted terms in dimension order.
func (idx *Index) Vocabulary() []string {
	out := make([]string, len(idx.terms))
	copy(out, idx.terms)
	return out
}

// vectorize projects tokens into the fitted space. Unknown tokens carry no
// weight. A result with no coordinates is the zero vector.
func (idx *Index) vectorize(tokens []string) sparseVector {
	counts := make(map[int]float64, len(tokens))
	for _, token := range tokens {
		if dim, ok := idx.vocabulary[token]; ok {
			counts[dim]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(sparseVector, 0, len(counts))
	for dim, count := range counts {
		vec = append(vec, weightedTerm{dim: dim, weight: count * idx.idf[dim]})
	}
	// accumulate in dimension order so equal token bags give bit-identical vectors
	sort.Slice(vec, func(i, j int) bool { return vec[i].dim < vec[j].dim })
	var norm float64
	for _, term := range vec {
		norm += term.weight * term.weight
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}
