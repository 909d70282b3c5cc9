package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"DocClassGo/datasets/text_preprocessor"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	multiLabel = &LabelField{NumClasses: 3, MultiLabel: true}
	wordText   = &TextField{Kind: Sequential}
)

func TestReadTabular(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.tsv")
	content := "100\tOil prices rose.\n011\tA \"quoted\" word\n001\tHe said \"no\" twice\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	split, err := ReadTabular(path, multiLabel, wordText)
	require.NoError(t, err)
	require.Equal(t, 3, split.Len())
	assert.Equal(t, path, split.Path)
	assert.Equal(t, []string{"oil", "prices", "rose"}, split.Examples[0].Text.Tokens)
	assert.Equal(t, []float64{0, 1, 1}, split.Examples[1].Label.Vector)
	assert.Equal(t, []string{"a", "quoted", "word"}, split.Examples[1].Text.Tokens)
	assert.Equal(t, []string{"he", "said", "no", "twice"}, split.Examples[2].Text.Tokens)
}

func TestReadTabularMissingFile(t *testing.T) {
	_, err := ReadTabular(filepath.Join(t.TempDir(), "nope.tsv"), multiLabel, wordText)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseTabularFailsFast(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		text    *TextField
		target  error
	}{
		{"label width", "100\tok\n10\tbad\n", wordText, text_preprocessor.ErrMalformedLabel},
		{"columns", "100\tok\textra\n", wordText, ErrMalformedRow},
		{"single column", "100\n", wordText, ErrMalformedRow},
		{"json", "100\t[1,\n", &TextField{Kind: Dense}, text_preprocessor.ErrMalformedJSON},
		{"ragged features", "100\t[1, 2]\n010\t[1]\n", &TextField{Kind: Dense}, ErrMalformedFeatures},
		{"field size", "100\t" + strings.Repeat("a", FieldSizeLimit+1) + "\n", wordText, ErrFieldTooLarge},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			split, err := ParseTabular(strings.NewReader(tc.content), "test.tsv", multiLabel, tc.text)
			assert.Nil(t, split)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
			assert.Contains(t, err.Error(), "test.tsv")
		})
	}
}

func TestParseTabularReportsLine(t *testing.T) {
	_, err := ParseTabular(strings.NewReader("100\ta\n010\tb\n0x0\tc\n"), "dev.tsv", multiLabel, wordText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev.tsv:3")
}

func TestParseTabularFeatureVectorsAreNotLimited(t *testing.T) {
	width := FieldSizeLimit/2 + 1
	values := strings.TrimSuffix(strings.Repeat("0, ", width), ", ")
	split, err := ParseTabular(strings.NewReader("100\t["+values+"]\n"), "tfidf_train.tsv", multiLabel, &TextField{Kind: Dense})
	require.NoError(t, err)
	assert.Equal(t, width, split.Examples[0].Len())
}

func TestParseTabularQuotesStayOnTheirLine(t *testing.T) {
	content := "1\t\"Quoted\" headline continues here\n" +
		"0\tsecond row\n" +
		"1\tHe said \"no\"\n" +
		"0\t\"Unterminated quote\n" +
		"1\t\"Tab\tinside\" and \"\"escaped\"\" quotes\n" +
		"0\tlast row\n"
	split, err := ParseTabular(strings.NewReader(content), "quotes.tsv", &LabelField{NumClasses: 2}, wordText)
	require.NoError(t, err)
	require.Equal(t, 6, split.Len())

	testCases := []struct {
		tokens []string
		class  int
	}{
		{[]string{"quoted", "headline", "continues", "here"}, 1},
		{[]string{"second", "row"}, 0},
		{[]string{"he", "said", "no"}, 1},
		{[]string{"unterminated", "quote"}, 0},
		{[]string{"tab", "inside", "and", "escaped", "quotes"}, 1},
		{[]string{"last", "row"}, 0},
	}
	for i, tc := range testCases {
		assert.Equal(t, tc.tokens, split.Examples[i].Text.Tokens, "row %d", i+1)
		assert.Equal(t, tc.class, split.Examples[i].Label.Class, "row %d", i+1)
	}
}

func TestSplitColumns(t *testing.T) {
	testCases := []struct {
		row  string
		want []string
	}{
		{"1\tplain", []string{"1", "plain"}},
		{"1\t\"Quoted\" headline", []string{"1", "Quoted headline"}},
		{"1\tends with \"quote\"", []string{"1", "ends with \"quote\""}},
		{"1\t\"a \"\"b\"\" c\"", []string{"1", "a \"b\" c"}},
		{"1\t\"tab\there\"", []string{"1", "tab\there"}},
		{"1\t\"open", []string{"1", "open"}},
		{"1\t", []string{"1", ""}},
		{"1\ta\tb", []string{"1", "a", "b"}},
	}
	for _, tc := range testCases {
		t.Run(tc.row, func(t *testing.T) {
			assert.Equal(t, tc.want, splitColumns(tc.row))
		})
	}
}

func TestReadRowsSkipsBlankLinesAndKeepsLineNumbers(t *testing.T) {
	var lines []int
	err := ReadRows(strings.NewReader("0\ta\r\n\n1\tb"), "rows.tsv", FieldSizeLimit, func(line int, label, text string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, lines)
}
