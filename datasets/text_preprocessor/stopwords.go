package text_preprocessor

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var supportedLanguages = map[string]struct{}{
	"arabic":      {},
	"azerbaijani": {},
	"basque":      {},
	"bengali":     {},
	"catalan":     {},
	"chinese":     {},
	"danish":      {},
	"dutch":       {},
	"english":     {},
	"finnish":     {},
	"french":      {},
	"german":      {},
	"greek":       {},
	"hebrew":      {},
	"hinglish":    {},
	"hungarian":   {},
	"indonesian":  {},
	"italian":     {},
	"kazakh":      {},
	"nepali":      {},
	"norwegian":   {},
	"portuguese":  {},
	"romanian":    {},
	"russian":     {},
	"slovene":     {},
	"spanish":     {},
	"swedish":     {},
	"tajik":       {},
	"turkish":     {},
}

// LoadStopwords reads "<dir>/<lang>.txt", one word per line. Blank lines and
// lines starting with '#' are ignored.
func LoadStopwords(dir, lang string) (map[string]struct{}, error) {
	lang = strings.ToLower(lang)
	if _, ok := supportedLanguages[lang]; !ok {
		return nil, errors.Errorf("stop-words for %s are not available", cases.Title(language.Und).String(lang))
	}

	filename := filepath.Join(dir, lang+".txt")
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open stop-words file %q", filename)
	}
	defer file.Close()

	stopwords := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		stopwords[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed reading stop-words file %q", filename)
	}
	return stopwords, nil
}

// GetStopwords accepts a language name (read from dir), an explicit word list,
// a set, or nil for no stop-words.
func GetStopwords(swList interface{}, dir string) (map[string]struct{}, error) {
	switch v := swList.(type) {
	case string:
		return LoadStopwords(dir, v)
	case []string:
		set := make(map[string]struct{}, len(v))
		for _, w := range v {
			set[w] = struct{}{}
		}
		return set, nil
	case map[string]struct{}:
		return v, nil
	case nil:
		return map[string]struct{}{}, nil
	default:
		return nil, errors.Errorf("unsupported type %T for stop-words", swList)
	}
}
