// Package config holds the settings of a dataset loading and training run,
// read from JSON or YAML files with environment overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"DocClassGo/common/trainers"
	"DocClassGo/datasets"
	"DocClassGo/datasets/text_preprocessor"
	"DocClassGo/datasets/vocab"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file and default values.
const (
	EnvDataDir      = "DOCCLASS_DATA_DIR"
	EnvVectorsCache = "DOCCLASS_VECTORS_CACHE"
)

// Unknown-word initializations accepted in UnkInit.
const (
	UnkInitZero    = "zero"
	UnkInitUniform = "uniform"
)

// uniformUnkRange bounds the values drawn by UnkInitUniform.
const uniformUnkRange = 0.25

// Preprocessing selects the optional text pipeline of word-level datasets.
type Preprocessing struct {
	Tokenizer         string `json:"tokenizer" yaml:"tokenizer"`
	Stemmer           string `json:"stemmer" yaml:"stemmer"`
	StopwordsLanguage string `json:"stopwords_language" yaml:"stopwords_language"`
	StopwordsDir      string `json:"stopwords_dir" yaml:"stopwords_dir"`

	DoHTMLStripping             bool `json:"html_stripping" yaml:"html_stripping"`
	DoSpecialCharsNormalization bool `json:"special_chars_normalization" yaml:"special_chars_normalization"`
	DoDiacriticsNormalization   bool `json:"diacritics_normalization" yaml:"diacritics_normalization"`
	DoAmpersandNormalization    bool `json:"ampersand_normalization" yaml:"ampersand_normalization"`
}

func (p *Preprocessing) isZero() bool {
	return *p == Preprocessing{}
}

// Config of a run.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Dataset is a datasets variant name, e.g. "ReutersHierarchical".
	Dataset string `json:"dataset" yaml:"dataset"`

	VectorsName  string `json:"vectors_name" yaml:"vectors_name"`
	VectorsCache string `json:"vectors_cache" yaml:"vectors_cache"`
	MaxVectors   int    `json:"max_vectors" yaml:"max_vectors"`

	BatchSize int   `json:"batch_size" yaml:"batch_size"`
	Shuffle   bool  `json:"shuffle" yaml:"shuffle"`
	Device    int   `json:"device" yaml:"device"`
	Seed      int64 `json:"seed" yaml:"seed"`

	// UnkInit is UnkInitZero or UnkInitUniform.
	UnkInit string `json:"unk_init" yaml:"unk_init"`

	// Verbosity: 0 for quiet operation; 1 for progress information; 2 and higher for debugging.
	Verbosity int `json:"verbosity" yaml:"verbosity"`

	Preprocessing Preprocessing   `json:"preprocessing" yaml:"preprocessing"`
	Trainer       trainers.Config `json:"trainer" yaml:"trainer"`
}

func getEnvOr(key, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Default returns the default configuration, with environment overrides applied.
func Default() *Config {
	c := &Config{
		DataDir:      "data",
		Dataset:      "Reuters",
		VectorsName:  "GoogleNews-vectors-negative300.txt",
		VectorsCache: filepath.Join("~", ".cache", "docclass", "vectors"),
		BatchSize:    64,
		Shuffle:      true,
		UnkInit:      UnkInitZero,
		Verbosity:    1,
		Trainer:      trainers.DefaultConfig(),
	}
	c.applyEnv()
	return c
}

func (c *Config) applyEnv() {
	c.DataDir = getEnvOr(EnvDataDir, c.DataDir)
	c.VectorsCache = getEnvOr(EnvVectorsCache, c.VectorsCache)
}

// FromFile reads a configuration file, JSON or YAML depending on its
// extension. Settings missing from the file keep their default value, and
// environment variables take precedence over both.
func FromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration %q", path)
	}
	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(content, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, c)
	default:
		return nil, errors.Errorf("configuration %q: unsupported extension %q, use .json, .yaml or .yml", path, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse configuration %q", path)
	}
	c.applyEnv()
	return c, nil
}

// Validate checks the settings that can be checked without reading any file.
func (c *Config) Validate() error {
	if _, err := datasets.Lookup(c.Dataset); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return errors.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxVectors < 0 {
		return errors.Errorf("max_vectors must not be negative, got %d", c.MaxVectors)
	}
	if c.UnkInit != UnkInitZero && c.UnkInit != UnkInitUniform {
		return errors.Errorf("unk_init must be %q or %q, got %q", UnkInitZero, UnkInitUniform, c.UnkInit)
	}
	return errors.WithMessage(c.Trainer.Validate(), "trainer")
}

// Definition returns the dataset definition named by Dataset.
func (c *Config) Definition() (*datasets.Definition, error) {
	return datasets.Lookup(c.Dataset)
}

// IterOptions converts c into the options of datasets.Definition.Iters.
func (c *Config) IterOptions() (datasets.Options, error) {
	opts := datasets.DefaultOptions()
	opts.VectorsName = c.VectorsName
	opts.VectorsCache = c.VectorsCache
	opts.MaxVectors = c.MaxVectors
	opts.BatchSize = c.BatchSize
	opts.Shuffle = c.Shuffle
	opts.Device = c.Device
	opts.Seed = c.Seed
	opts.Verbosity = c.Verbosity

	switch c.UnkInit {
	case UnkInitZero, "":
		opts.UnkInit = vocab.ZeroInit
	case UnkInitUniform:
		opts.UnkInit = vocab.UniformInit(c.Seed, uniformUnkRange)
	default:
		return opts, errors.Errorf("unk_init %q not supported", c.UnkInit)
	}

	if !c.Preprocessing.isZero() {
		p := &c.Preprocessing
		pipeline, err := text_preprocessor.ConfigFromNames(p.Tokenizer, p.Stemmer, p.StopwordsLanguage, p.StopwordsDir)
		if err != nil {
			return opts, err
		}
		pipeline.DoHTMLStripping = p.DoHTMLStripping
		pipeline.DoSpecialCharsNormalization = p.DoSpecialCharsNormalization
		pipeline.DoDiacriticsNormalization = p.DoDiacriticsNormalization
		pipeline.DoAmpersandNormalization = p.DoAmpersandNormalization
		opts.Pipeline = pipeline
	}
	return opts, nil
}
