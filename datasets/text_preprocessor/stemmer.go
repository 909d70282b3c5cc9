package text_preprocessor

import (
	"strings"

	"github.com/kljensen/snowball"
	"github.com/pkg/errors"
	"github.com/reiver/go-porterstemmer"
)

// StemmerFunc maps a token onto its stem.
type StemmerFunc func(string) string

var stemmersDict = map[string]StemmerFunc{
	"porter":    porterStemmer,
	"english":   snowballStemmer("english"),
	"french":    snowballStemmer("french"),
	"spanish":   snowballStemmer("spanish"),
	"russian":   snowballStemmer("russian"),
	"swedish":   snowballStemmer("swedish"),
	"norwegian": snowballStemmer("norwegian"),
	"hungarian": snowballStemmer("hungarian"),
}

// Short tokens are returned unchanged; the porter rules mangle them.
func porterStemmer(word string) string {
	if len(word) < 3 {
		return word
	}
	if stemmed := porterstemmer.StemString(word); stemmed != "" {
		return stemmed
	}
	return word
}

func snowballStemmer(language string) StemmerFunc {
	return func(word string) string {
		stemmed, err := snowball.Stem(word, language, true)
		if err != nil {
			return word
		}
		return stemmed
	}
}

// GetStemmer retrieves a stemmer by name ("porter" or a snowball language).
func GetStemmer(stemmer string) (StemmerFunc, error) {
	stemmer = strings.ToLower(stemmer)
	if stemFunc, exists := stemmersDict[stemmer]; exists {
		return stemFunc, nil
	}
	return nil, errors.Errorf("stemmer %q not supported", stemmer)
}
