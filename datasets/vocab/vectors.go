// Package vocab loads pretrained word vectors and builds vocabularies with
// their embedding matrices.
//
// Vectors are stored as text, one "token v1 v2 ... vd" entry per line
// (GloVe and word2vec text formats, optionally gzipped). The first load of a
// file converts it to a binary cache next to it, which later loads prefer.
package vocab

import (
	"bufio"
	"compress/gzip"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"
)

// Errors returned while loading vectors.
var (
	ErrVectorsNotFound = errors.New("vocab: no vectors found")
	ErrInconsistentDim = errors.New("vocab: inconsistent vector dimensions")
	ErrMalformedVector = errors.New("vocab: malformed vector entry")
)

// CacheSuffix is appended to the vectors file name to form the binary cache file name.
const CacheSuffix = ".bin"

// UnkInit initializes, in place, the vector of a token without a pretrained entry.
// It receives a zeroed slice.
type UnkInit func(vec []float64)

// ZeroInit leaves unknown vectors at zero.
func ZeroInit(vec []float64) {
	for i := range vec {
		vec[i] = 0
	}
}

// UniformInit draws unknown vectors from U(-a, a) with a deterministic source.
func UniformInit(seed int64, a float64) UnkInit {
	rng := rand.New(rand.NewSource(seed))
	return func(vec []float64) {
		for i := range vec {
			vec[i] = (2*rng.Float64() - 1) * a
		}
	}
}

// Vectors is a set of pretrained word vectors.
type Vectors struct {
	Name string
	Itos []string
	Stoi map[string]int
	Dim  int

	// Matrix holds one row per entry of Itos.
	Matrix *mat.Dense

	// UnkInit is used by Lookup for tokens without an entry. Nil means ZeroInit.
	UnkInit UnkInit
}

// NewVectors wraps a matrix whose rows are the vectors of itos. The matrix
// must have at least one column.
// When a token appears more than once, its last row wins.
func NewVectors(name string, itos []string, matrix *mat.Dense, unkInit UnkInit) (*Vectors, error) {
	rows, cols := matrix.Dims()
	if rows != len(itos) {
		return nil, errors.Errorf("vectors %q: %d tokens but %d rows", name, len(itos), rows)
	}
	if cols == 0 {
		return nil, errors.Wrapf(ErrInconsistentDim, "vectors %q have no dimensions", name)
	}
	v := &Vectors{
		Name:    name,
		Itos:    itos,
		Stoi:    make(map[string]int, len(itos)),
		Dim:     cols,
		Matrix:  matrix,
		UnkInit: unkInit,
	}
	for i, token := range itos {
		v.Stoi[token] = i
	}
	return v, nil
}

// Len returns the number of vectors.
func (v *Vectors) Len() int {
	return len(v.Itos)
}

// Lookup returns a copy of the vector for token, or an UnkInit vector if unknown.
func (v *Vectors) Lookup(token string) []float64 {
	vec := make([]float64, v.Dim)
	if i, found := v.Stoi[token]; found {
		copy(vec, v.Matrix.RawRowView(i))
		return vec
	}
	if v.UnkInit != nil {
		v.UnkInit(vec)
	}
	return vec
}

// LoadOptions configures LoadVectors.
type LoadOptions struct {
	// MaxVectors keeps only the first MaxVectors entries of the file. 0 keeps all.
	MaxVectors int

	// UnkInit is stored in the returned Vectors.
	UnkInit UnkInit

	// Verbosity: 0 for quiet operation; 1 for progress information; 2 and higher for debugging.
	Verbosity int
}

// LoadVectors loads the vectors named name.
//
// If name is an existing file it is read directly, otherwise it is looked up
// as cacheDir/name. In both cases the binary cache lives in cacheDir. A leading
// "~" in cacheDir is expanded to the user's home directory.
func LoadVectors(name, cacheDir string, opts LoadOptions) (*Vectors, error) {
	cacheDir, err := replaceTildeInDir(cacheDir)
	if err != nil {
		return nil, err
	}
	textPath := filepath.Join(cacheDir, name)
	if fileExists(name) {
		textPath = name
	}
	cachePath := filepath.Join(cacheDir, filepath.Base(name))
	if opts.MaxVectors > 0 {
		cachePath += "_" + strconv.Itoa(opts.MaxVectors)
	}
	cachePath += CacheSuffix

	if fileExists(cachePath) {
		v, err := readCache(cachePath)
		if err != nil {
			return nil, errors.WithMessagef(err, "remove %q to have it rebuilt from %q", cachePath, textPath)
		}
		v.UnkInit = opts.UnkInit
		if opts.Verbosity >= 2 {
			log.Printf("Loaded %s vectors of dimension %d from cache %q", humanize.Comma(int64(v.Len())), v.Dim, cachePath)
		}
		return v, nil
	}

	if !fileExists(textPath) {
		return nil, errors.Wrapf(ErrVectorsNotFound, "at %q", textPath)
	}
	v, err := readText(textPath, opts)
	if err != nil {
		return nil, err
	}
	if err := writeCache(cachePath, v); err != nil {
		log.Printf("Warning: vectors loaded but not cached: %+v", err)
	}
	return v, nil
}

// readText parses a vectors text file.
func readText(textPath string, opts LoadOptions) (*Vectors, error) {
	f, err := os.Open(textPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open vectors file %q", textPath)
	}
	defer f.Close()

	var r io.Reader = f
	var bar *progressbar.ProgressBar
	if opts.Verbosity >= 1 {
		if info, err := f.Stat(); err == nil {
			log.Printf("Loading vectors from %q (%s)", textPath, humanize.Bytes(uint64(info.Size())))
			bar = progressbar.DefaultBytes(info.Size(), filepath.Base(textPath))
			r = io.TeeReader(f, bar)
		}
	}
	if strings.HasSuffix(textPath, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read gzipped vectors file %q", textPath)
		}
		defer gz.Close()
		r = gz
	}

	var (
		itos []string
		data []float64
		dim  int
	)
	br := bufio.NewReaderSize(r, 1<<20)
	for lineNumber := 1; opts.MaxVectors <= 0 || len(itos) < opts.MaxVectors; lineNumber++ {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrapf(readErr, "failed reading %q", textPath)
		}
		line = strings.TrimRight(line, " \t\r\n")
		if line != "" {
			entries := strings.Split(line, " ")
			word, values := entries[0], entries[1:]
			switch {
			case len(values) == 1:
				if opts.Verbosity >= 2 {
					log.Printf("Skipping token %q with 1-dimensional vector, likely a header (%s:%d)", word, textPath, lineNumber)
				}
			case dim == 0 && len(values) > 1:
				dim = len(values)
				fallthrough
			default:
				if dim == 0 || len(values) != dim {
					return nil, errors.Wrapf(ErrInconsistentDim, "vector for token %q has %d dimensions, previous ones have %d (%s:%d)",
						word, len(values), dim, textPath, lineNumber)
				}
				for _, s := range values {
					x, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return nil, errors.Wrapf(ErrMalformedVector, "token %q: %v (%s:%d)", word, err, textPath, lineNumber)
					}
					data = append(data, x)
				}
				itos = append(itos, word)
			}
		}
		if readErr == io.EOF {
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if len(itos) == 0 {
		return nil, errors.Wrapf(ErrVectorsNotFound, "file %q holds no vectors", textPath)
	}

	v, err := NewVectors(filepath.Base(textPath), itos, mat.NewDense(len(itos), dim, data), opts.UnkInit)
	if err != nil {
		return nil, err
	}
	if opts.Verbosity >= 1 {
		log.Printf("Loaded %s vectors of dimension %d", humanize.Comma(int64(v.Len())), v.Dim)
	}
	return v, nil
}
