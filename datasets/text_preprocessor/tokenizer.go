package text_preprocessor

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// TokenizerFunc defines the type for tokenizer functions.
type TokenizerFunc func(string) []string

var (
	wordPattern      = regexp.MustCompile(`\w+`)
	wordPunctPattern = regexp.MustCompile(`\w+|[^\w\s]+`)
	sentencePattern  = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// tokenizersDict maps tokenizer names to their corresponding functions.
var tokenizersDict = map[string]TokenizerFunc{
	"clean":      CleanString,
	"whitespace": strings.Fields,
	"word":       wordTokenizer,
	"wordpunct":  wordPunctTokenizer,
	"sent":       sentenceTokenizer,
}

func wordTokenizer(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

func wordPunctTokenizer(text string) []string {
	return wordPunctPattern.FindAllString(text, -1)
}

func sentenceTokenizer(text string) []string {
	return sentencePattern.FindAllString(text, -1)
}

func getTokenizer(tokenizer string) (TokenizerFunc, error) {
	tokenizer = strings.ToLower(tokenizer)
	if fn, exists := tokenizersDict[tokenizer]; exists {
		return fn, nil
	}
	return nil, errors.Errorf("tokenizer %q not supported", tokenizer)
}

// GetTokenizer returns a tokenizer given its registered name, a TokenizerFunc,
// or nil for the identity tokenizer.
func GetTokenizer(tokenizer interface{}) (TokenizerFunc, error) {
	switch t := tokenizer.(type) {
	case string:
		return getTokenizer(t)
	case TokenizerFunc:
		return t, nil
	case func(string) []string:
		return t, nil
	case nil:
		return identityFunction, nil
	default:
		return nil, errors.Errorf("unsupported tokenizer type %T", tokenizer)
	}
}

// identityFunction is a tokenizer function that returns the input as a single token.
func identityFunction(input string) []string {
	return []string{input}
}
