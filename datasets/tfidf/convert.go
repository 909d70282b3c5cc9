package tfidf

import (
	"bufio"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"DocClassGo/datasets"
	"DocClassGo/datasets/data"
	"DocClassGo/datasets/text_preprocessor"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

var (
	// DefaultDirCreationPerm is used when creating output directories.
	DefaultDirCreationPerm = os.FileMode(0755)

	// DefaultFileCreationPerm is used when creating output files.
	DefaultFileCreationPerm = os.FileMode(0644)
)

// Options configures ConvertSplits.
type Options struct {
	// Tokenize splits texts into terms. Nil uses text_preprocessor.CleanString.
	Tokenize text_preprocessor.TokenizerFunc

	// MaxFeatures is the vector width, see Fit. 0 keeps every training term.
	MaxFeatures int

	// Verbosity: 0 for quiet operation; 1 for progress information; 2 and higher for debugging.
	Verbosity int
}

type row struct {
	label string
	doc   Document
}

// ConvertSplits reads the text splits src under root, fits a Vectorizer on the
// training split and writes every split to dst as [label, JSON vector] rows.
// Labels are copied verbatim. Existing output files are replaced atomically.
func ConvertSplits(root string, src, dst datasets.Paths, opts Options) (*Vectorizer, error) {
	tokenize := opts.Tokenize
	if tokenize == nil {
		tokenize = text_preprocessor.CleanString
	}
	srcFiles := []string{src.Train, src.Validation, src.Test}
	dstFiles := []string{dst.Train, dst.Validation, dst.Test}

	splits := make([][]row, len(srcFiles))
	for i, file := range srcFiles {
		rows, err := readSplit(filepath.Join(root, file), tokenize)
		if err != nil {
			return nil, err
		}
		splits[i] = rows
	}

	docs := make([]Document, len(splits[0]))
	for i, r := range splits[0] {
		docs[i] = r.doc
	}
	v := Fit(docs, opts.MaxFeatures)
	if opts.Verbosity >= 1 {
		log.Printf("TF-IDF: %s features from %s training documents, vectors of width %s",
			humanize.Comma(int64(len(v.Features))), humanize.Comma(int64(v.N)), humanize.Comma(int64(v.Width)))
	}

	for i, file := range dstFiles {
		if err := writeSplit(filepath.Join(root, file), splits[i], v, opts.Verbosity); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func readSplit(path string, tokenize text_preprocessor.TokenizerFunc) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open split file %q", path)
	}
	defer f.Close()

	var rows []row
	err = data.ReadRows(f, path, data.FieldSizeLimit, func(_ int, label, text string) error {
		rows = append(rows, row{label: label, doc: NewDocument(tokenize(text))})
		return nil
	})
	return rows, err
}

func writeSplit(path string, rows []row, v *Vectorizer, verbosity int) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "creating directory for %q", path)
	}
	tmpPath := path + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFileCreationPerm)
	if err != nil {
		return errors.Wrapf(err, "creating temporary file %q", tmpPath)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	var bar *progressbar.ProgressBar
	if verbosity >= 1 {
		bar = progressbar.Default(int64(len(rows)), filepath.Base(path))
	}
	w := bufio.NewWriter(f)
	for _, r := range rows {
		encoded, err := encodeVector(v.Transform(r.doc))
		if err != nil {
			return errors.Wrapf(err, "encoding a vector of %q", path)
		}
		w.WriteString(r.label)
		w.WriteByte('\t')
		w.Write(encoded)
		w.WriteByte('\n')
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %q", tmpPath)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", tmpPath)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "moving %q to %q", tmpPath, path)
	}
	return nil
}

// encodeVector writes vec as a JSON array, zeros as "0".
func encodeVector(vec []float64) ([]byte, error) {
	out := make([]byte, 0, 2*len(vec)+2)
	out = append(out, '[')
	for i, x := range vec {
		if i > 0 {
			out = append(out, ',')
		}
		if x == 0 {
			out = append(out, '0')
			continue
		}
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return append(out, ']'), nil
}
