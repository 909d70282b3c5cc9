package text_preprocessor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"Hello, World!!", []string{"hello,", "world!!"}},
		{"Hello; World.", []string{"hello", "world"}},
		{"  Tabs\tand\nnewlines  ", []string{"tabs", "and", "newlines"}},
		{"it's `quoted` (really)?", []string{"it's", "`quoted`", "(really)?"}},
		{"U.S. $5-billion deal", []string{"u", "s", "5", "billion", "deal"}},
		{"perché", []string{"perch"}},
		{"", []string{}},
		{"#@%", []string{}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CleanString(tc.input), "CleanString(%q)", tc.input)
	}
}

func TestSplitSents(t *testing.T) {
	assert.Equal(t, []string{"First one", " Second one", ""}, SplitSents("First one. Second one."))
	assert.Equal(t, []string{"Really   no", " Yes"}, SplitSents("Really?! no. Yes!"))
	assert.Equal(t, []string{""}, SplitSents("  "))
}

func TestGenerateNgrams(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	got := GenerateNgrams(tokens, 2)
	assert.Equal(t, []string{"a", "b", "c", "a-b", "b-c"}, got)
	assert.Equal(t, []string{"a", "b", "c"}, tokens, "input must not be modified")

	got[0] = "z"
	assert.Equal(t, "a", tokens[0], "output must not alias the input")

	assert.Equal(t, []string{"a", "b", "c", "a-b-c"}, GenerateNgrams(tokens, 3))
	assert.Equal(t, []string{"a", "b", "c"}, GenerateNgrams(tokens, 4))
	assert.Equal(t, []string{"a", "b", "c"}, GenerateNgrams(tokens, 0))
	assert.Equal(t, []string{}, GenerateNgrams(nil, 2))
	assert.Equal(t, []string{"x"}, Bigrams([]string{"x"}))
}

func TestProcessLabels(t *testing.T) {
	labels, err := ProcessLabels("0101")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 1}, labels)

	_, err = ProcessLabels("01x1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLabel))
}

func TestLoadJSON(t *testing.T) {
	vec, err := LoadJSON("[0.5, 0, 2]")
	require.NoError(t, err)
	assert.Equal(t, 3, vec.Len())
	assert.Equal(t, []float64{0.5, 0, 2}, vec.RawVector().Data)

	for _, bad := range []string{"", "[", "{\"a\": 1}", "[\"x\"]", "[]"} {
		_, err := LoadJSON(bad)
		assert.True(t, errors.Is(err, ErrMalformedJSON), "LoadJSON(%q) = %v", bad, err)
	}
}
