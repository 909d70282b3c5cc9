package vocab

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func toyVectors(t *testing.T) *Vectors {
	t.Helper()
	v, err := NewVectors("toy", []string{"cat", "dog"}, mat.NewDense(2, 2, []float64{1, 2, 3, 4}), nil)
	require.NoError(t, err)
	return v
}

func TestBuildOrder(t *testing.T) {
	counter := Counter{}
	counter.Update([]string{"dog", "cat", "dog", "bird", "ant", "<pad>"})

	v := Build(counter, nil)
	assert.Equal(t, []string{"<unk>", "<pad>", "dog", "ant", "bird", "cat"}, v.Itos)
	assert.Equal(t, 0, v.Index("zebra"))
	assert.Equal(t, 1, v.PadIndex())
	assert.Equal(t, []int{2, 5, 0}, v.Numericalize([]string{"dog", "cat", "zebra"}))
	assert.Nil(t, v.Vectors)
	assert.Equal(t, 2, v.Freqs["dog"])
}

func TestBuildWithVectors(t *testing.T) {
	counter := Counter{}
	counter.Update([]string{"cat", "cat", "fish"})

	v := Build(counter, toyVectors(t))
	require.Equal(t, []string{"<unk>", "<pad>", "cat", "fish"}, v.Itos)
	rows, cols := v.Vectors.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []float64{1, 2}, v.Vectors.RawRowView(2))
	assert.Equal(t, []float64{0, 0}, v.Vectors.RawRowView(3))
	assert.Equal(t, []float64{0, 0}, v.Vectors.RawRowView(0))
}

func TestBuildIsDeterministic(t *testing.T) {
	tokens := []string{"b", "a", "c", "a", "d", "e", "f", "g", "b"}
	vectors := toyVectors(t)

	first := Counter{}
	first.Update(tokens)
	second := Counter{}
	for i := len(tokens) - 1; i >= 0; i-- {
		second.Update(tokens[i : i+1])
	}

	v1, v2 := Build(first, vectors), Build(second, vectors)
	assert.Equal(t, v1.Stoi, v2.Stoi)
	assert.Equal(t, v1.Itos, v2.Itos)
	assert.True(t, mat.Equal(v1.Vectors, v2.Vectors))
}

func TestVectorsWithoutDimensions(t *testing.T) {
	_, err := NewVectors("empty", nil, &mat.Dense{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentDim), "got %v", err)

	counter := Counter{}
	counter.Update([]string{"a"})
	var v *Vocab
	require.NotPanics(t, func() { v = Build(counter, &Vectors{Name: "empty"}) })
	assert.Equal(t, []string{"<unk>", "<pad>", "a"}, v.Itos)
	assert.Nil(t, v.Vectors)
}
