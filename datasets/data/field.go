package data

import (
	"strconv"
	"strings"

	"DocClassGo/datasets/text_preprocessor"
	"DocClassGo/datasets/vocab"

	"github.com/pkg/errors"
)

// ErrMalformedFeatures is returned for feature vectors of the wrong width.
var ErrMalformedFeatures = errors.New("data: malformed feature vector")

// TextField parses the text column. Which members are used depends on Kind:
//
//   - Sequential: Prepare if set, Tokenize, then Postprocess if set.
//   - Nested: Prepare if set, SplitSentences, then Tokenize on every sentence.
//   - CharQuantized: Alphabet and MaxLength.
//   - Dense: text_preprocessor.LoadJSON, checked against FeatureSize if > 0.
type TextField struct {
	Kind           TextKind
	Prepare        func(string) string
	Tokenize       text_preprocessor.TokenizerFunc
	Postprocess    func([]string) []string
	SplitSentences func(string) []string
	Alphabet       *text_preprocessor.Alphabet
	MaxLength      int
	FeatureSize    int
}

// UsesVocab reports whether the field is numericalized through a Vocab.
func (f *TextField) UsesVocab() bool {
	return f.Kind == Sequential || f.Kind == Nested
}

// Preprocess parses one raw text column.
func (f *TextField) Preprocess(raw string) (Text, error) {
	text := Text{Kind: f.Kind}
	if f.Prepare != nil && f.UsesVocab() {
		raw = f.Prepare(raw)
	}
	switch f.Kind {
	case Sequential:
		text.Tokens = f.tokenize(raw)
		if f.Postprocess != nil {
			text.Tokens = f.Postprocess(text.Tokens)
		}
	case Nested:
		split := f.SplitSentences
		if split == nil {
			split = text_preprocessor.SplitSents
		}
		sentences := split(raw)
		text.Sentences = make([][]string, len(sentences))
		for i, sentence := range sentences {
			text.Sentences[i] = f.tokenize(sentence)
		}
	case CharQuantized:
		if f.Alphabet == nil {
			return text, errors.New("char-quantized field without an alphabet")
		}
		text.Grid = text_preprocessor.CharQuantize(raw, f.Alphabet, f.MaxLength)
	case Dense:
		features, err := text_preprocessor.LoadJSON(raw)
		if err != nil {
			return text, err
		}
		if f.FeatureSize > 0 && features.Len() != f.FeatureSize {
			return text, errors.Wrapf(ErrMalformedFeatures, "got %d features, want %d", features.Len(), f.FeatureSize)
		}
		text.Features = features
	default:
		return text, errors.Errorf("unknown text kind %d", f.Kind)
	}
	return text, nil
}

func (f *TextField) tokenize(raw string) []string {
	if f.Tokenize == nil {
		return text_preprocessor.CleanString(raw)
	}
	return f.Tokenize(raw)
}

// tokens lists every token of text, flattening sentences.
func (f *TextField) tokens(text *Text) []string {
	if text.Kind == Sequential {
		return text.Tokens
	}
	var all []string
	for _, sentence := range text.Sentences {
		all = append(all, sentence...)
	}
	return all
}

// LabelField parses the label column.
//
// Multi-label columns are packed 0/1 strings of width NumClasses. Single-label
// columns hold either a decimal class index or a one-hot string of width NumClasses.
type LabelField struct {
	NumClasses int
	MultiLabel bool
}

// Preprocess parses one raw label column.
func (f *LabelField) Preprocess(raw string) (Label, error) {
	raw = strings.TrimSpace(raw)
	if f.MultiLabel {
		vector, err := text_preprocessor.ProcessLabels(raw)
		if err != nil {
			return Label{}, err
		}
		if len(vector) != f.NumClasses {
			return Label{}, errors.Wrapf(text_preprocessor.ErrMalformedLabel,
				"label %q has %d classes, want %d", raw, len(vector), f.NumClasses)
		}
		return Label{Vector: vector, Class: -1}, nil
	}

	class, err := f.singleClass(raw)
	if err != nil {
		return Label{}, err
	}
	vector := make([]float64, f.NumClasses)
	vector[class] = 1
	return Label{Vector: vector, Class: class}, nil
}

func (f *LabelField) singleClass(raw string) (int, error) {
	if len(raw) == f.NumClasses && strings.Trim(raw, "01") == "" && f.NumClasses > 1 {
		if strings.Count(raw, "1") != 1 {
			return 0, errors.Wrapf(text_preprocessor.ErrMalformedLabel,
				"single-label %q must have exactly one class set", raw)
		}
		return strings.IndexByte(raw, '1'), nil
	}
	class, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(text_preprocessor.ErrMalformedLabel, "label %q is not a class index", raw)
	}
	if class < 0 || class >= f.NumClasses {
		return 0, errors.Wrapf(text_preprocessor.ErrMalformedLabel,
			"class %d out of range [0, %d)", class, f.NumClasses)
	}
	return class, nil
}

// BuildVocab counts the tokens of every example in splits and builds a Vocab
// with vectors, which may be nil.
func BuildVocab(field *TextField, vectors *vocab.Vectors, splits ...*Split) (*vocab.Vocab, error) {
	if !field.UsesVocab() {
		return nil, errors.Errorf("%s text does not use a vocabulary", field.Kind)
	}
	counter := vocab.Counter{}
	for _, split := range splits {
		for _, example := range split.Examples {
			counter.Update(field.tokens(&example.Text))
		}
	}
	return vocab.Build(counter, vectors), nil
}
