package vocab

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Special tokens, always at the front of a Vocab in this order.
const (
	UnkToken = "<unk>"
	PadToken = "<pad>"
)

// Counter counts token occurrences.
type Counter map[string]int

// Update adds one occurrence of every token.
func (c Counter) Update(tokens []string) {
	for _, token := range tokens {
		c[token]++
	}
}

// Vocab maps tokens to indices, with an optional embedding matrix.
type Vocab struct {
	Itos  []string
	Stoi  map[string]int
	Freqs Counter

	// Vectors has one row per entry of Itos. Nil when built without vectors.
	Vectors *mat.Dense
}

// Build creates a Vocab from counter: the special tokens first, then the
// remaining tokens by descending frequency, ties broken alphabetically.
// The result only depends on the counts, never on map iteration order.
//
// If vectors is not nil each entry gets its pretrained row, or a
// vectors.UnkInit row when the token has none. Vectors without dimensions
// are ignored.
func Build(counter Counter, vectors *Vectors) *Vocab {
	specials := []string{UnkToken, PadToken}
	v := &Vocab{
		Itos:  make([]string, 0, len(counter)+len(specials)),
		Stoi:  make(map[string]int, len(counter)+len(specials)),
		Freqs: make(Counter, len(counter)),
	}
	for _, token := range specials {
		v.Stoi[token] = len(v.Itos)
		v.Itos = append(v.Itos, token)
	}

	words := make([]string, 0, len(counter))
	for token, freq := range counter {
		v.Freqs[token] = freq
		if _, special := v.Stoi[token]; !special {
			words = append(words, token)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if counter[words[i]] != counter[words[j]] {
			return counter[words[i]] > counter[words[j]]
		}
		return words[i] < words[j]
	})
	for _, token := range words {
		v.Stoi[token] = len(v.Itos)
		v.Itos = append(v.Itos, token)
	}

	if vectors != nil && vectors.Dim > 0 {
		v.Vectors = mat.NewDense(len(v.Itos), vectors.Dim, nil)
		for i, token := range v.Itos {
			v.Vectors.SetRow(i, vectors.Lookup(strings.TrimSpace(token)))
		}
	}
	return v
}

// Len returns the number of entries, special tokens included.
func (v *Vocab) Len() int {
	return len(v.Itos)
}

// Index returns the index of token, or the index of UnkToken.
func (v *Vocab) Index(token string) int {
	if i, found := v.Stoi[token]; found {
		return i
	}
	return v.Stoi[UnkToken]
}

// PadIndex returns the index of PadToken.
func (v *Vocab) PadIndex() int {
	return v.Stoi[PadToken]
}

// Numericalize maps tokens to indices.
func (v *Vocab) Numericalize(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, token := range tokens {
		ids[i] = v.Index(token)
	}
	return ids
}
