// Package tfidf computes the TF-IDF feature vectors read by the ReutersTFIDF
// dataset variant from the plain text splits.
package tfidf

import (
	"math"
	"sort"
)

// Document is one tokenized document with its term frequencies.
type Document struct {
	Tokens    []string
	TermFreqs map[string]int
}

// NewDocument counts the tokens of a document.
func NewDocument(tokens []string) Document {
	doc := Document{Tokens: tokens, TermFreqs: make(map[string]int)}
	for _, token := range tokens {
		doc.TermFreqs[token]++
	}
	return doc
}

// Vectorizer maps documents to L2-normalized TF-IDF vectors of a fixed width.
type Vectorizer struct {
	// Features are the terms of the vector dimensions, most frequent first.
	Features []string

	// IDF holds the inverse document frequency of every feature.
	IDF []float64

	// Width of the vectors, at least len(Features). Extra dimensions stay 0.
	Width int

	// N is the number of documents the vectorizer was fitted on.
	N int

	index map[string]int
}

// Fit learns features and inverse document frequencies from docs. At most
// maxFeatures terms are kept, those occurring in the most documents, ties
// broken alphabetically. When maxFeatures > 0 it is also the vector width.
func Fit(docs []Document, maxFeatures int) *Vectorizer {
	numAppearances := make(map[string]int)
	for _, doc := range docs {
		for token := range doc.TermFreqs {
			numAppearances[token]++
		}
	}

	terms := make([]string, 0, len(numAppearances))
	for token := range numAppearances {
		terms = append(terms, token)
	}
	sort.Slice(terms, func(i, j int) bool {
		if numAppearances[terms[i]] != numAppearances[terms[j]] {
			return numAppearances[terms[i]] > numAppearances[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	v := &Vectorizer{
		Features: terms,
		IDF:      make([]float64, len(terms)),
		Width:    max(maxFeatures, len(terms)),
		N:        len(docs),
		index:    make(map[string]int, len(terms)),
	}
	for i, token := range terms {
		v.index[token] = i
		v.IDF[i] = idf(v.N, numAppearances[token])
	}
	return v
}

// idf is the smoothed inverse document frequency of a term found in n of
// numDocs documents. It is always positive.
func idf(numDocs, n int) float64 {
	return math.Log((float64(numDocs-n)+0.5)/(float64(n)+0.5) + 1.0)
}

// Index returns the dimension of token, or false if it is not a feature.
func (v *Vectorizer) Index(token string) (int, bool) {
	i, found := v.index[token]
	return i, found
}

// Transform returns the vector of doc. Terms that are not features are ignored;
// a document without any feature maps to the zero vector.
func (v *Vectorizer) Transform(doc Document) []float64 {
	vec := make([]float64, v.Width)
	norm := 0.0
	for token, f := range doc.TermFreqs {
		i, found := v.index[token]
		if !found {
			continue
		}
		vec[i] = float64(f) * v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}
