package datasets

import (
	"log"

	"DocClassGo/datasets/data"
	"DocClassGo/datasets/text_preprocessor"
	"DocClassGo/datasets/vocab"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Options configures Definition.Iters.
type Options struct {
	// VectorsName and VectorsCache locate the pretrained word vectors, see
	// vocab.LoadVectors. Ignored when Vectors is set or the variant has no vocabulary.
	VectorsName  string
	VectorsCache string

	BatchSize int
	Shuffle   bool
	Device    int

	// Vectors, if set, are used instead of loading VectorsName.
	Vectors *vocab.Vectors

	// UnkInit initializes the vectors of tokens missing from the vectors file.
	UnkInit vocab.UnkInit

	// MaxVectors limits how many vectors are read from the file. 0 reads all.
	MaxVectors int

	// Seed of the shuffling sources. 0 seeds from the clock. The train, dev
	// and test iterators get distinct seeds derived from it.
	Seed int64

	// Verbosity: 0 for quiet operation; 1 for progress information; 2 and higher for debugging.
	Verbosity int

	// Pipeline, if set, replaces the variant's tokenizer, see Definition.WithPipeline.
	Pipeline *text_preprocessor.Config
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		BatchSize: 64,
		Shuffle:   true,
		UnkInit:   vocab.ZeroInit,
		Verbosity: 1,
	}
}

// Loaders holds the iterators of one Iters call.
type Loaders struct {
	Train, Dev, Test *data.BucketIterator

	// Vocab is nil for variants without a vocabulary.
	Vocab *vocab.Vocab
}

// Embedding returns the vocabulary's embedding matrix, or nil.
func (l *Loaders) Embedding() *mat.Dense {
	if l.Vocab == nil {
		return nil
	}
	return l.Vocab.Vectors
}

// Iters reads the splits under root and returns an iterator for each.
//
// Word-level variants load the pretrained vectors and build a vocabulary from
// the tokens of all three splits. Character-quantized and TF-IDF variants skip
// both. Every call rebuilds the splits, the vocabulary and the iterators.
func (d *Definition) Iters(root string, opts Options) (*Loaders, error) {
	def := d.WithPipeline(opts.Pipeline)
	train, dev, test, err := def.Splits(root)
	if err != nil {
		return nil, err
	}
	if opts.Verbosity >= 1 {
		log.Printf("%s: %s train, %s dev, %s test examples", def.Variant,
			humanize.Comma(int64(train.Len())), humanize.Comma(int64(dev.Len())), humanize.Comma(int64(test.Len())))
	}

	loaders := &Loaders{}
	if def.Text.UsesVocab() {
		vectors := opts.Vectors
		if vectors == nil {
			unkInit := opts.UnkInit
			if unkInit == nil {
				unkInit = vocab.ZeroInit
			}
			vectors, err = vocab.LoadVectors(opts.VectorsName, opts.VectorsCache, vocab.LoadOptions{
				MaxVectors: opts.MaxVectors,
				UnkInit:    unkInit,
				Verbosity:  opts.Verbosity,
			})
			if err != nil {
				return nil, errors.WithMessagef(err, "while loading vectors for %s", def.Variant)
			}
		}
		loaders.Vocab, err = data.BuildVocab(&def.Text, vectors, train, dev, test)
		if err != nil {
			return nil, err
		}
		if opts.Verbosity >= 1 {
			log.Printf("%s: vocabulary of %s tokens", def.Variant, humanize.Comma(int64(loaders.Vocab.Len())))
		}
	}

	iterators := []**data.BucketIterator{&loaders.Train, &loaders.Dev, &loaders.Test}
	for i, split := range []*data.Split{train, dev, test} {
		seed := splitSeed(opts.Seed, i, len(iterators))
		*iterators[i], err = data.NewBucketIterator(split, &def.Text, &def.Label, loaders.Vocab, data.IteratorOptions{
			BatchSize:       opts.BatchSize,
			Shuffle:         opts.Shuffle,
			SortWithinBatch: def.Text.UsesVocab(),
			Device:          opts.Device,
			Seed:            seed,
		})
		if err != nil {
			return nil, errors.WithMessagef(err, "while creating the %s iterator of %s", split.Name, def.Variant)
		}
	}
	return loaders, nil
}

// splitSeed derives the seed of the i-th of n iterators from seed. A non-zero
// seed never yields 0, which would seed from the clock.
func splitSeed(seed int64, i, n int) int64 {
	if seed == 0 {
		return 0
	}
	if s := seed + int64(i); s != 0 {
		return s
	}
	return seed + int64(n)
}
