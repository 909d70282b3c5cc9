package text_preprocessor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAlphabet(t *testing.T) {
	reuters, err := GetAlphabet("Reuters")
	require.NoError(t, err)
	assert.Equal(t, 68, reuters.Size())
	assert.Equal(t, 1000, reuters.MaxLength)

	wired, err := GetAlphabet("wired")
	require.NoError(t, err)
	assert.Equal(t, 68, wired.Size())
	assert.Equal(t, 500, wired.MaxLength)

	_, err = GetAlphabet("imdb")
	assert.Error(t, err)
}

func TestCharQuantizeRoundTrip(t *testing.T) {
	a, err := GetAlphabet("Reuters")
	require.NoError(t, err)

	text := "hello, world! {x}=\"1\\2\""
	grid := CharQuantize(text, a, 40)
	rows, cols := grid.Dims()
	require.Equal(t, 40, rows)
	require.Equal(t, a.Size(), cols)
	assert.Equal(t, strings.ReplaceAll(text, " ", ""), a.Decode(grid))

	for i := len([]rune(strings.ReplaceAll(text, " ", ""))); i < rows; i++ {
		for _, v := range grid.RawRowView(i) {
			assert.Zero(t, v, "row %d must be padding", i)
		}
	}
}

func TestCharQuantizeDropsUnknownCharacters(t *testing.T) {
	a, err := GetAlphabet("Wired")
	require.NoError(t, err)

	// Spaces, accents and tabs are not in the alphabet and take no row.
	grid := CharQuantize("Ab è\tc", a, 5)
	assert.Equal(t, "abc", a.Decode(grid))

	idx, ok := a.Index('c')
	require.True(t, ok)
	assert.Equal(t, 1.0, grid.At(2, idx))

	var sum float64
	for i := 0; i < 5; i++ {
		for _, v := range grid.RawRowView(i) {
			sum += v
		}
	}
	assert.Equal(t, 3.0, sum)
}

func TestCharQuantizeTruncates(t *testing.T) {
	a, err := GetAlphabet("Wired")
	require.NoError(t, err)

	grid := CharQuantize("abcdefgh", a, 3)
	rows, _ := grid.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, "abc", a.Decode(grid))

	grid = CharQuantize("abc", a, 0)
	rows, _ = grid.Dims()
	assert.Equal(t, 500, rows)
}
