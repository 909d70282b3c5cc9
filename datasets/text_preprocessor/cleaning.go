package text_preprocessor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by the field parsers.
var (
	ErrMalformedJSON  = errors.New("text_preprocessor: malformed JSON feature vector")
	ErrMalformedLabel = errors.New("text_preprocessor: malformed label string")
)

var (
	disallowedChars = regexp.MustCompile("[^A-Za-z0-9(),!?'`]")
	repeatedSpaces  = regexp.MustCompile(`\s{2,}`)
	sentenceMarks   = regexp.MustCompile(`[!?]`)
)

// CleanString tokenizes text for the word-level dataset variants.
// Characters outside [A-Za-z0-9(),!?'`] become spaces, the result is lowercased
// and split on whitespace.
func CleanString(text string) []string {
	text = disallowedChars.ReplaceAllString(text, " ")
	text = repeatedSpaces.ReplaceAllString(text, " ")
	return strings.Fields(strings.ToLower(text))
}

// SplitSents drops '!' and '?' and splits the remaining text on '.'.
// Empty pieces are kept, so "a. b." yields ["a", " b", ""].
func SplitSents(text string) []string {
	text = sentenceMarks.ReplaceAllString(text, " ")
	return strings.Split(strings.TrimSpace(text), ".")
}

// GenerateNgrams returns a new slice holding tokens followed by every run of
// n adjacent tokens joined with '-'. The input slice is not modified.
func GenerateNgrams(tokens []string, n int) []string {
	out := make([]string, len(tokens), len(tokens)+max(len(tokens)-n+1, 0))
	copy(out, tokens)
	if n < 1 {
		return out
	}
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], "-"))
	}
	return out
}

// Bigrams is GenerateNgrams with n=2, the default used by the bag-of-words variant.
func Bigrams(tokens []string) []string {
	return GenerateNgrams(tokens, 2)
}

// LoadJSON parses a JSON array literal into a dense feature vector.
func LoadJSON(text string) (*mat.VecDense, error) {
	var values []float64
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return nil, errors.Wrapf(ErrMalformedJSON, "%v", err)
	}
	if len(values) == 0 {
		return nil, errors.Wrap(ErrMalformedJSON, "empty feature vector")
	}
	return mat.NewVecDense(len(values), values), nil
}

// ProcessLabels converts a packed label string such as "0101" into one float per character.
func ProcessLabels(text string) ([]float64, error) {
	labels := make([]float64, 0, len(text))
	for i, r := range text {
		v, err := strconv.ParseFloat(string(r), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedLabel, "character %q at offset %d of %q", r, i, text)
		}
		labels = append(labels, v)
	}
	return labels, nil
}
