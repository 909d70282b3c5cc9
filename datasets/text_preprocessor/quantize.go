package text_preprocessor

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// charSymbols is the character set used by the character-quantized variants.
const charSymbols = "abcdefghijklmnopqrstuvwxyz0123456789,;.!?:'\"/\\|_@#$%^&*~`+-=<>()[]{}"

// Alphabet maps characters to one-hot positions for CharQuantize.
type Alphabet struct {
	Name      string
	Symbols   string
	MaxLength int
	index     map[rune]int
}

func newAlphabet(name, symbols string, maxLength int) *Alphabet {
	a := &Alphabet{Name: name, Symbols: symbols, MaxLength: maxLength, index: make(map[rune]int)}
	for _, r := range symbols {
		if _, found := a.index[r]; !found {
			a.index[r] = len(a.index)
		}
	}
	return a
}

// alphabetsDict holds one alphabet per dataset family.
var alphabetsDict = map[string]*Alphabet{
	"reuters": newAlphabet("Reuters", charSymbols, 1000),
	"wired":   newAlphabet("Wired", charSymbols, 500),
}

// GetAlphabet returns the alphabet registered for a dataset family ("Reuters" or "Wired").
func GetAlphabet(name string) (*Alphabet, error) {
	if a, exists := alphabetsDict[strings.ToLower(name)]; exists {
		return a, nil
	}
	return nil, errors.Errorf("no character alphabet for %q", name)
}

// Size is the width of a one-hot row.
func (a *Alphabet) Size() int {
	return len(a.index)
}

// Index returns the one-hot position of r.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// CharQuantize encodes text as a maxLength x a.Size() one-hot grid.
//
// Text is lowercased first. Characters missing from the alphabet are dropped,
// they do not take a row. Longer inputs are truncated and shorter ones are
// padded with all-zero rows. A maxLength <= 0 selects a.MaxLength.
func CharQuantize(text string, a *Alphabet, maxLength int) *mat.Dense {
	if maxLength <= 0 {
		maxLength = a.MaxLength
	}
	grid := mat.NewDense(maxLength, a.Size(), nil)
	row := 0
	for _, r := range strings.ToLower(text) {
		if row == maxLength {
			break
		}
		if col, ok := a.index[r]; ok {
			grid.Set(row, col, 1)
			row++
		}
	}
	return grid
}

// Decode maps every non-zero row of grid back to its character, stopping at
// the first all-zero row.
func (a *Alphabet) Decode(grid *mat.Dense) string {
	symbols := []rune(a.Symbols)
	rows, _ := grid.Dims()
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		best, bestValue := -1, 0.0
		for j, v := range grid.RawRowView(i) {
			if v > bestValue {
				best, bestValue = j, v
			}
		}
		if best < 0 {
			break
		}
		sb.WriteRune(symbols[best])
	}
	return sb.String()
}
