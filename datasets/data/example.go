// Package data holds the building blocks shared by every dataset definition:
// examples, the text and label fields that parse them, tab-separated split
// files, and the bucketing batch iterator.
package data

import (
	"gonum.org/v1/gonum/mat"
)

// TextKind selects how a TextField encodes text.
type TextKind int

const (
	// Sequential text is a flat token sequence, numericalized with a vocabulary.
	Sequential TextKind = iota

	// Nested text is a sequence of sentences, each a token sequence.
	Nested

	// CharQuantized text is a fixed-size one-hot character grid.
	CharQuantized

	// Dense text is a pre-computed feature vector, e.g. TF-IDF.
	Dense
)

func (k TextKind) String() string {
	switch k {
	case Sequential:
		return "sequential"
	case Nested:
		return "nested"
	case CharQuantized:
		return "char-quantized"
	case Dense:
		return "dense"
	}
	return "unknown"
}

// Label of one example. Vector always has NumClasses entries; Class is the
// class index for single-label datasets and -1 otherwise.
type Label struct {
	Vector []float64
	Class  int
}

// Text of one example. Only the member matching Kind is set.
type Text struct {
	Kind      TextKind
	Tokens    []string
	Sentences [][]string
	Grid      *mat.Dense
	Features  *mat.VecDense
}

// Example is one labeled document. Examples are never modified after loading.
type Example struct {
	Label Label
	Text  Text
}

// Len is the sort key used for bucketing: tokens, sentences, grid rows or
// feature width, depending on the text kind.
func (e *Example) Len() int {
	switch e.Text.Kind {
	case Sequential:
		return len(e.Text.Tokens)
	case Nested:
		return len(e.Text.Sentences)
	case CharQuantized:
		if e.Text.Grid == nil {
			return 0
		}
		rows, _ := e.Text.Grid.Dims()
		return rows
	case Dense:
		if e.Text.Features == nil {
			return 0
		}
		return e.Text.Features.Len()
	}
	return 0
}
