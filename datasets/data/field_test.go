package data

import (
	"testing"

	"DocClassGo/datasets/text_preprocessor"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFieldMultiLabel(t *testing.T) {
	f := &LabelField{NumClasses: 4, MultiLabel: true}

	label, err := f.Preprocess("0101")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 1}, label.Vector)
	assert.Equal(t, -1, label.Class)

	for _, bad := range []string{"010", "01010", "01a1", ""} {
		_, err := f.Preprocess(bad)
		assert.True(t, errors.Is(err, text_preprocessor.ErrMalformedLabel), "Preprocess(%q) = %v", bad, err)
	}
}

func TestLabelFieldSingleLabel(t *testing.T) {
	f := &LabelField{NumClasses: 4}

	label, err := f.Preprocess("2")
	require.NoError(t, err)
	assert.Equal(t, 2, label.Class)
	assert.Equal(t, []float64{0, 0, 1, 0}, label.Vector)

	label, err = f.Preprocess("0001")
	require.NoError(t, err)
	assert.Equal(t, 3, label.Class)

	for _, bad := range []string{"4", "-1", "0101", "0000", "x"} {
		_, err := f.Preprocess(bad)
		assert.True(t, errors.Is(err, text_preprocessor.ErrMalformedLabel), "Preprocess(%q) = %v", bad, err)
	}
}

func TestTextFieldKinds(t *testing.T) {
	sequential := &TextField{Kind: Sequential, Postprocess: text_preprocessor.Bigrams}
	text, err := sequential.Preprocess("A b, C")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b,", "c", "a-b,", "b,-c"}, text.Tokens)
	assert.True(t, sequential.UsesVocab())

	nested := &TextField{Kind: Nested}
	text, err = nested.Preprocess("One two. Three!")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"one", "two"}, {"three"}}, text.Sentences)
	assert.Equal(t, 2, (&Example{Text: text}).Len())

	alphabet, err := text_preprocessor.GetAlphabet("Wired")
	require.NoError(t, err)
	chars := &TextField{Kind: CharQuantized, Alphabet: alphabet, MaxLength: 8}
	text, err = chars.Preprocess("abc")
	require.NoError(t, err)
	assert.Equal(t, 8, (&Example{Text: text}).Len())
	assert.False(t, chars.UsesVocab())

	dense := &TextField{Kind: Dense, FeatureSize: 3}
	text, err = dense.Preprocess("[1, 2, 3]")
	require.NoError(t, err)
	assert.Equal(t, 3, (&Example{Text: text}).Len())
	_, err = dense.Preprocess("[1, 2]")
	assert.True(t, errors.Is(err, ErrMalformedFeatures))
	_, err = dense.Preprocess("not json")
	assert.True(t, errors.Is(err, text_preprocessor.ErrMalformedJSON))
}

func TestBuildVocabUnion(t *testing.T) {
	field := &TextField{Kind: Nested}
	train := &Split{Examples: []*Example{{Text: Text{Kind: Nested, Sentences: [][]string{{"a", "b"}, {"a"}}}}}}
	test := &Split{Examples: []*Example{{Text: Text{Kind: Nested, Sentences: [][]string{{"c"}}}}}}

	v, err := BuildVocab(field, nil, train, test)
	require.NoError(t, err)
	assert.Equal(t, []string{"<unk>", "<pad>", "a", "b", "c"}, v.Itos)

	_, err = BuildVocab(&TextField{Kind: Dense}, nil, train)
	assert.Error(t, err)
}
