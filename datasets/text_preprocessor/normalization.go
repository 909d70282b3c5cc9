package text_preprocessor

import (
	"strings"

	"github.com/rainycape/unidecode"
)

// StringStep rewrites raw text before it is tokenized.
type StringStep func(string) string

// TokenStep rewrites a token sequence after tokenization.
type TokenStep func([]string) []string

// Typographic quotes and dashes collapse onto the ASCII characters CleanString keeps.
var specialCharsTrans = strings.NewReplacer("‘", "'", "’", "'", "´", "'", "“", "\"", "”", "\"", "–", "-", "—", "-")

func NormalizeAmpersand(text string) string {
	return strings.ReplaceAll(text, "&", " and ")
}

// NormalizeDiacritics transliterates to ASCII ("perché" -> "perche"), so
// accented words survive CleanString instead of being split apart.
func NormalizeDiacritics(text string) string {
	return unidecode.Unidecode(text)
}

func NormalizeSpecialChars(text string) string {
	return specialCharsTrans.Replace(text)
}

func removeEmptyTokens(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != "" {
			result = append(result, token)
		}
	}
	return result
}

func removeStopwords(stopwords map[string]struct{}) TokenStep {
	return func(tokens []string) []string {
		result := make([]string, 0, len(tokens))
		for _, token := range tokens {
			if _, found := stopwords[token]; !found {
				result = append(result, token)
			}
		}
		return result
	}
}

func applyStemmer(stemmer StemmerFunc) TokenStep {
	return func(tokens []string) []string {
		result := make([]string, len(tokens))
		for i, token := range tokens {
			result[i] = stemmer(token)
		}
		return result
	}
}
