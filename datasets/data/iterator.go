package data

import (
	"iter"
	"math/rand"
	"sort"
	"time"

	"DocClassGo/datasets/vocab"

	"github.com/pkg/errors"
)

// poolFactor is the number of batches sorted together when bucketing.
const poolFactor = 100

// IteratorOptions configures a BucketIterator.
type IteratorOptions struct {
	BatchSize int

	// Shuffle permutes examples and batches at the start of every pass.
	Shuffle bool

	// SortWithinBatch orders the examples of each batch by descending length.
	SortWithinBatch bool

	// Device is copied into every Batch.
	Device int

	// Seed of the shuffling source. 0 seeds from the clock.
	Seed int64
}

// BucketIterator yields batches of examples of similar length.
//
// Examples are taken in chunks of poolFactor*BatchSize, sorted by length inside
// the chunk and cut into batches, so every batch needs little padding while the
// split as a whole is never globally sorted.
type BucketIterator struct {
	split *Split
	label *LabelField
	vocab *vocab.Vocab
	opts  IteratorOptions
	rng   *rand.Rand
	epoch int
}

// NewBucketIterator creates an iterator over split. v is required for text
// kinds that use a vocabulary and ignored otherwise.
func NewBucketIterator(split *Split, text *TextField, label *LabelField, v *vocab.Vocab, opts IteratorOptions) (*BucketIterator, error) {
	if opts.BatchSize <= 0 {
		return nil, errors.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}
	if label.NumClasses <= 0 {
		return nil, errors.Errorf("number of classes must be positive, got %d", label.NumClasses)
	}
	if text.UsesVocab() && v == nil {
		return nil, errors.Errorf("%s text of split %q needs a vocabulary", text.Kind, split.Name)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &BucketIterator{
		split: split,
		label: label,
		vocab: v,
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Split returns the split being iterated.
func (it *BucketIterator) Split() *Split {
	return it.split
}

// Len returns the number of batches of one pass.
func (it *BucketIterator) Len() int {
	return (it.split.Len() + it.opts.BatchSize - 1) / it.opts.BatchSize
}

// Epoch returns how many passes have been started.
func (it *BucketIterator) Epoch() int {
	return it.epoch
}

// Batches returns one pass over the split. Every call starts a new pass and,
// with Shuffle, a new random order.
func (it *BucketIterator) Batches() iter.Seq[*Batch] {
	return func(yield func(*Batch) bool) {
		it.epoch++
		for _, indices := range it.plan() {
			examples := make([]*Example, len(indices))
			for i, idx := range indices {
				examples[i] = it.split.Examples[idx]
			}
			if !yield(newBatch(examples, it.label, it.vocab, it.opts.Device)) {
				return
			}
		}
	}
}

// plan groups example indices into the batches of one pass.
func (it *BucketIterator) plan() [][]int {
	examples := it.split.Examples
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}
	if it.opts.Shuffle {
		it.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	byLength := func(idx []int, descending bool) {
		sort.SliceStable(idx, func(i, j int) bool {
			if descending {
				return examples[idx[i]].Len() > examples[idx[j]].Len()
			}
			return examples[idx[i]].Len() < examples[idx[j]].Len()
		})
	}

	batchSize := it.opts.BatchSize
	var batches [][]int
	for _, pool := range chunk(order, batchSize*poolFactor) {
		if it.opts.SortWithinBatch {
			byLength(pool, false)
		}
		poolBatches := chunk(pool, batchSize)
		if it.opts.Shuffle {
			it.rng.Shuffle(len(poolBatches), func(i, j int) {
				poolBatches[i], poolBatches[j] = poolBatches[j], poolBatches[i]
			})
		}
		if it.opts.SortWithinBatch {
			for _, b := range poolBatches {
				byLength(b, true)
			}
		}
		batches = append(batches, poolBatches...)
	}
	return batches
}

// chunk cuts s into consecutive pieces of at most size elements, sharing s.
func chunk(s []int, size int) [][]int {
	var out [][]int
	for len(s) > size {
		out = append(out, s[:size:size])
		s = s[size:]
	}
	if len(s) > 0 {
		out = append(out, s)
	}
	return out
}
