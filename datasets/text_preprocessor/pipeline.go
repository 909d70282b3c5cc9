package text_preprocessor

import (
	"github.com/pkg/errors"
)

// Config holds the optional preprocessing steps wrapped around a tokenizer.
// The zero value of every Do* flag leaves text untouched.
type Config struct {
	Tokenizer                   TokenizerFunc
	Stemmer                     StemmerFunc
	Stopwords                   map[string]struct{}
	DoHTMLStripping             bool
	DoSpecialCharsNormalization bool
	DoDiacriticsNormalization   bool
	DoAmpersandNormalization    bool
}

// NewConfig returns a Config tokenizing with CleanString and no extra steps.
func NewConfig() *Config {
	return &Config{
		Tokenizer: CleanString,
		Stopwords: make(map[string]struct{}),
	}
}

// ConfigFromNames builds a Config from names, as found in configuration files.
// Empty names disable the corresponding step.
func ConfigFromNames(tokenizer, stemmer, stopwordsLanguage, stopwordsDir string) (*Config, error) {
	c := NewConfig()
	if tokenizer != "" {
		fn, err := GetTokenizer(tokenizer)
		if err != nil {
			return nil, err
		}
		c.Tokenizer = fn
	}
	if stemmer != "" {
		fn, err := GetStemmer(stemmer)
		if err != nil {
			return nil, err
		}
		c.Stemmer = fn
	}
	if stopwordsLanguage != "" {
		sw, err := LoadStopwords(stopwordsDir, stopwordsLanguage)
		if err != nil {
			return nil, errors.WithMessage(err, "while configuring the text pipeline")
		}
		c.Stopwords = sw
	}
	return c, nil
}

// Pipeline applies string steps, the tokenizer and then token steps.
type Pipeline struct {
	tokenizer TokenizerFunc
	before    []StringStep
	after     []TokenStep
}

// NewPipeline compiles config into a Pipeline.
func NewPipeline(config *Config) *Pipeline {
	p := &Pipeline{tokenizer: config.Tokenizer}
	if p.tokenizer == nil {
		p.tokenizer = CleanString
	}
	if config.DoHTMLStripping {
		p.before = append(p.before, StripHTML)
	}
	if config.DoSpecialCharsNormalization {
		p.before = append(p.before, NormalizeSpecialChars)
	}
	if config.DoDiacriticsNormalization {
		p.before = append(p.before, NormalizeDiacritics)
	}
	if config.DoAmpersandNormalization {
		p.before = append(p.before, NormalizeAmpersand)
	}
	if len(config.Stopwords) > 0 {
		p.after = append(p.after, removeStopwords(config.Stopwords))
	}
	if config.Stemmer != nil {
		p.after = append(p.after, applyStemmer(config.Stemmer))
	}
	if len(p.after) > 0 {
		p.after = append(p.after, removeEmptyTokens)
	}
	return p
}

// Tokenize runs text through the pipeline. It satisfies TokenizerFunc.
func (p *Pipeline) Tokenize(text string) []string {
	return p.TokenizePrepared(p.Prepare(text))
}

// Prepare applies the string steps only.
func (p *Pipeline) Prepare(text string) string {
	for _, step := range p.before {
		text = step(text)
	}
	return text
}

// TokenizePrepared applies the tokenizer and the token steps to text that
// already went through Prepare.
func (p *Pipeline) TokenizePrepared(text string) []string {
	tokens := p.tokenizer(text)
	for _, step := range p.after {
		tokens = step(tokens)
	}
	return tokens
}

// IsIdentity reports whether the pipeline adds nothing to its tokenizer.
func (p *Pipeline) IsIdentity() bool {
	return len(p.before) == 0 && len(p.after) == 0
}
