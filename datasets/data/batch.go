package data

import (
	"DocClassGo/datasets/vocab"

	"gonum.org/v1/gonum/mat"
)

// Batch is a group of examples padded to a common length.
//
// Text, Nested, Grids and Features are alternatives: only the one matching the
// text kind of the examples is set.
type Batch struct {
	// Examples are the source examples, in batch order. Read-only.
	Examples []*Example

	// Lengths holds the unpadded length (Example.Len) of every example.
	Lengths []int

	// Text is batch x max length, padded with the vocabulary's pad index.
	Text [][]int

	// Nested is batch x max sentences x max sentence length, padded likewise.
	Nested [][][]int

	// Grids are the one-hot character grids, shared with the examples.
	Grids []*mat.Dense

	// Features is batch x feature width.
	Features *mat.Dense

	// Labels is batch x number of classes.
	Labels *mat.Dense

	// Classes holds class indices for single-label datasets, nil otherwise.
	Classes []int

	// Device the consumer should place the batch on; not interpreted here.
	Device int
}

// Size returns the number of examples in the batch.
func (b *Batch) Size() int {
	return len(b.Examples)
}

// newBatch tensorizes examples.
func newBatch(examples []*Example, label *LabelField, v *vocab.Vocab, device int) *Batch {
	b := &Batch{
		Examples: examples,
		Lengths:  make([]int, len(examples)),
		Labels:   mat.NewDense(len(examples), label.NumClasses, nil),
		Device:   device,
	}
	if !label.MultiLabel {
		b.Classes = make([]int, len(examples))
	}
	for i, example := range examples {
		b.Lengths[i] = example.Len()
		b.Labels.SetRow(i, example.Label.Vector)
		if b.Classes != nil {
			b.Classes[i] = example.Label.Class
		}
	}

	switch examples[0].Text.Kind {
	case Sequential:
		b.Text = padSequences(examples, v)
	case Nested:
		b.Nested = padNested(examples, v)
	case CharQuantized:
		b.Grids = make([]*mat.Dense, len(examples))
		for i, example := range examples {
			b.Grids[i] = example.Text.Grid
		}
	case Dense:
		b.Features = mat.NewDense(len(examples), examples[0].Len(), nil)
		for i, example := range examples {
			for j := 0; j < example.Text.Features.Len(); j++ {
				b.Features.Set(i, j, example.Text.Features.AtVec(j))
			}
		}
	}
	return b
}

func padSequences(examples []*Example, v *vocab.Vocab) [][]int {
	maxLen := 0
	for _, example := range examples {
		maxLen = max(maxLen, len(example.Text.Tokens))
	}
	out := make([][]int, len(examples))
	for i, example := range examples {
		out[i] = padIDs(v.Numericalize(example.Text.Tokens), maxLen, v.PadIndex())
	}
	return out
}

func padNested(examples []*Example, v *vocab.Vocab) [][][]int {
	maxSents, maxWords := 0, 0
	for _, example := range examples {
		maxSents = max(maxSents, len(example.Text.Sentences))
		for _, sentence := range example.Text.Sentences {
			maxWords = max(maxWords, len(sentence))
		}
	}
	pad := v.PadIndex()
	out := make([][][]int, len(examples))
	for i, example := range examples {
		out[i] = make([][]int, maxSents)
		for s := range out[i] {
			var ids []int
			if s < len(example.Text.Sentences) {
				ids = v.Numericalize(example.Text.Sentences[s])
			}
			out[i][s] = padIDs(ids, maxWords, pad)
		}
	}
	return out
}

func padIDs(ids []int, length, pad int) []int {
	out := make([]int, length)
	n := copy(out, ids)
	for j := n; j < length; j++ {
		out[j] = pad
	}
	return out
}
