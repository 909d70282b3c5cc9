// Package datasets defines the Reuters and Wired text classification datasets
// and their preprocessing variants, and builds batch iterators over them.
package datasets

import (
	"path/filepath"
	"sort"
	"strings"

	"DocClassGo/datasets/data"
	"DocClassGo/datasets/text_preprocessor"

	"github.com/pkg/errors"
)

// Paths locates the three split files, relative to a data root.
type Paths struct {
	Train, Validation, Test string
}

// Definition is one named preprocessing configuration of a dataset.
type Definition struct {
	// Name of the dataset family: "Reuters" or "Wired".
	Name string

	// Variant is the registry key, e.g. "ReutersBOW".
	Variant string

	NumClasses   int
	IsMultilabel bool

	Text  data.TextField
	Label data.LabelField

	// Paths are the default split files.
	Paths Paths

	// FeatureSize is the width of pre-computed feature vectors, 0 for other variants.
	FeatureSize int
}

func splitPaths(dir, prefix string) Paths {
	return Paths{
		Train:      filepath.Join(dir, prefix+"train.tsv"),
		Validation: filepath.Join(dir, prefix+"dev.tsv"),
		Test:       filepath.Join(dir, prefix+"test.tsv"),
	}
}

func mustAlphabet(name string) *text_preprocessor.Alphabet {
	a, err := text_preprocessor.GetAlphabet(name)
	if err != nil {
		panic(err)
	}
	return a
}

const (
	reutersClasses = 90
	wiredClasses   = 42

	// ReutersVocabSize is the width of the Reuters TF-IDF vectors.
	ReutersVocabSize = 30485
)

var (
	reutersLabel = data.LabelField{NumClasses: reutersClasses, MultiLabel: true}
	wiredLabel   = data.LabelField{NumClasses: wiredClasses}
)

// Reuters variants.
var (
	Reuters = &Definition{
		Name: "Reuters", Variant: "Reuters",
		NumClasses: reutersClasses, IsMultilabel: true,
		Text:  data.TextField{Kind: data.Sequential, Tokenize: text_preprocessor.CleanString},
		Label: reutersLabel,
		Paths: splitPaths("Reuters", ""),
	}

	ReutersBOW = &Definition{
		Name: "Reuters", Variant: "ReutersBOW",
		NumClasses: reutersClasses, IsMultilabel: true,
		Text: data.TextField{
			Kind:        data.Sequential,
			Tokenize:    text_preprocessor.CleanString,
			Postprocess: text_preprocessor.Bigrams,
		},
		Label: reutersLabel,
		Paths: splitPaths("Reuters", ""),
	}

	ReutersHierarchical = &Definition{
		Name: "Reuters", Variant: "ReutersHierarchical",
		NumClasses: reutersClasses, IsMultilabel: true,
		Text: data.TextField{
			Kind:           data.Nested,
			Tokenize:       text_preprocessor.CleanString,
			SplitSentences: text_preprocessor.SplitSents,
		},
		Label: reutersLabel,
		Paths: splitPaths("Reuters", ""),
	}

	ReutersCharQuantized = &Definition{
		Name: "Reuters", Variant: "ReutersCharQuantized",
		NumClasses: reutersClasses, IsMultilabel: true,
		Text: data.TextField{
			Kind:      data.CharQuantized,
			Alphabet:  mustAlphabet("reuters"),
			MaxLength: mustAlphabet("reuters").MaxLength,
		},
		Label: reutersLabel,
		Paths: splitPaths("Reuters", ""),
	}

	ReutersTFIDF = &Definition{
		Name: "Reuters", Variant: "ReutersTFIDF",
		NumClasses: reutersClasses, IsMultilabel: true,
		Text:        data.TextField{Kind: data.Dense, FeatureSize: ReutersVocabSize},
		Label:       reutersLabel,
		Paths:       splitPaths("Reuters", "tfidf_"),
		FeatureSize: ReutersVocabSize,
	}
)

// Wired variants.
var (
	Wired = &Definition{
		Name: "Wired", Variant: "Wired",
		NumClasses: wiredClasses,
		Text:       data.TextField{Kind: data.Sequential, Tokenize: text_preprocessor.CleanString},
		Label:      wiredLabel,
		Paths:      splitPaths("wired_it", ""),
	}

	WiredHierarchical = &Definition{
		Name: "Wired", Variant: "WiredHierarchical",
		NumClasses: wiredClasses,
		Text: data.TextField{
			Kind:           data.Nested,
			Tokenize:       text_preprocessor.CleanString,
			SplitSentences: text_preprocessor.SplitSents,
		},
		Label: wiredLabel,
		Paths: splitPaths("wired_it", ""),
	}

	WiredCharQuantized = &Definition{
		Name: "Wired", Variant: "WiredCharQuantized",
		NumClasses: wiredClasses,
		Text: data.TextField{
			Kind:      data.CharQuantized,
			Alphabet:  mustAlphabet("wired"),
			MaxLength: mustAlphabet("wired").MaxLength,
		},
		Label: wiredLabel,
		Paths: splitPaths("wired_it", ""),
	}
)

// definitionsDict maps lowercased variant names to their definitions.
var definitionsDict = map[string]*Definition{}

func init() {
	for _, d := range []*Definition{
		Reuters, ReutersBOW, ReutersHierarchical, ReutersCharQuantized, ReutersTFIDF,
		Wired, WiredHierarchical, WiredCharQuantized,
	} {
		definitionsDict[strings.ToLower(d.Variant)] = d
	}
}

// Lookup returns a copy of the definition registered as variant, matched
// case-insensitively. The copy may be modified freely.
func Lookup(variant string) (*Definition, error) {
	d, exists := definitionsDict[strings.ToLower(variant)]
	if !exists {
		return nil, errors.Errorf("dataset %q not supported, known datasets: %s",
			variant, strings.Join(Variants(), ", "))
	}
	return d.Clone(), nil
}

// Variants lists the registered variant names, sorted.
func Variants() []string {
	names := make([]string, 0, len(definitionsDict))
	for _, d := range definitionsDict {
		names = append(names, d.Variant)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of d.
func (d *Definition) Clone() *Definition {
	c := *d
	return &c
}

// WithPipeline returns a copy of d tokenizing with the pipeline described by
// config. The string steps run on the whole text, before sentence splitting.
// Variants that do not tokenize are returned unchanged.
func (d *Definition) WithPipeline(config *text_preprocessor.Config) *Definition {
	c := d.Clone()
	if config == nil || !c.Text.UsesVocab() {
		return c
	}
	p := text_preprocessor.NewPipeline(config)
	c.Text.Prepare = p.Prepare
	c.Text.Tokenize = p.TokenizePrepared
	return c
}

// Splits reads the train, validation and test files under root. Non-empty
// entries of paths replace the default paths, in that order.
func (d *Definition) Splits(root string, paths ...string) (train, dev, test *data.Split, err error) {
	if len(paths) > 3 {
		return nil, nil, nil, errors.Errorf("at most 3 split paths expected, got %d", len(paths))
	}
	files := []string{d.Paths.Train, d.Paths.Validation, d.Paths.Test}
	for i, p := range paths {
		if p != "" {
			files[i] = p
		}
	}
	splits := make([]*data.Split, len(files))
	for i, file := range files {
		splits[i], err = data.ReadTabular(filepath.Join(root, file), &d.Label, &d.Text)
		if err != nil {
			return nil, nil, nil, errors.WithMessagef(err, "while reading %s", d.Variant)
		}
	}
	splits[0].Name, splits[1].Name, splits[2].Name = "train", "dev", "test"
	return splits[0], splits[1], splits[2], nil
}
