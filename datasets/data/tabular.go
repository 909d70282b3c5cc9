package data

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// FieldSizeLimit is the largest column, in characters, accepted in a split file.
// Feature vector columns are not limited.
const FieldSizeLimit = 50000

// Errors returned while reading split files.
var (
	ErrMalformedRow  = errors.New("data: malformed row")
	ErrFieldTooLarge = errors.New("data: field larger than field limit")
)

// Split is one partition (train, dev or test) of a dataset.
type Split struct {
	Name     string
	Path     string
	Examples []*Example
}

// Len returns the number of examples.
func (s *Split) Len() int {
	return len(s.Examples)
}

// ReadTabular loads a tab-separated file with [label, text] columns.
// The first row that fails to parse aborts the load.
func ReadTabular(path string, label *LabelField, text *TextField) (*Split, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open split file %q", path)
	}
	defer f.Close()

	split, err := ParseTabular(f, path, label, text)
	if err != nil {
		return nil, err
	}
	split.Path = path
	return split, nil
}

// ParseTabular reads rows from r; name is used in error messages.
func ParseTabular(r io.Reader, name string, label *LabelField, text *TextField) (*Split, error) {
	split := &Split{Name: name}
	featureSize := text.FeatureSize
	limit := FieldSizeLimit
	if text.Kind == Dense {
		// JSON feature vectors are not limited.
		limit = 0
	}
	err := ReadRows(r, name, limit, func(line int, rawLabel, rawText string) error {
		example := &Example{}
		var err error
		if example.Label, err = label.Preprocess(rawLabel); err != nil {
			return err
		}
		if example.Text, err = text.Preprocess(rawText); err != nil {
			return err
		}
		if text.Kind == Dense {
			if featureSize == 0 {
				featureSize = example.Len()
			} else if example.Len() != featureSize {
				return errors.Wrapf(ErrMalformedFeatures, "got %d features, previous rows have %d",
					example.Len(), featureSize)
			}
		}
		split.Examples = append(split.Examples, example)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return split, nil
}

// ReadRows calls fn with the two columns of every row of r, stopping at the
// first error. Rows are single lines, split on tabs; blank lines are skipped.
// Columns longer than limit characters are rejected, 0 disables the check.
// Errors are prefixed with name and the line number.
func ReadRows(r io.Reader, name string, limit int, fn func(line int, label, text string) error) error {
	reader := bufio.NewReader(r)
	for line := 1; ; line++ {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrapf(err, "%s:%d: reading row", name, line)
		}
		raw = strings.TrimRight(raw, "\r\n")
		if raw != "" {
			record := splitColumns(raw)
			if len(record) != 2 {
				return errors.Wrapf(ErrMalformedRow, "%s:%d: expected 2 columns, got %d", name, line, len(record))
			}
			for _, field := range record {
				if n := utf8.RuneCountInString(field); limit > 0 && n > limit {
					return errors.Wrapf(ErrFieldTooLarge, "%s:%d: %d > %d characters", name, line, n, limit)
				}
			}
			if err := fn(line, record[0], record[1]); err != nil {
				return errors.WithMessagef(err, "%s:%d", name, line)
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// splitColumns splits one row on tabs. A column opening with a double quote
// is read up to its closing quote, with "" standing for a literal quote, and
// anything following the closing quote up to the next tab is kept as is.
// Quotes elsewhere are literal and never extend a column past its line.
func splitColumns(row string) []string {
	var (
		columns []string
		column  strings.Builder
	)
	const (
		start = iota
		unquoted
		quoted
		quoteInQuoted
	)
	state := start
	for _, c := range row {
		switch {
		case c == '\t' && state != quoted:
			columns = append(columns, column.String())
			column.Reset()
			state = start
		case state == start && c == '"':
			state = quoted
		case state == quoted && c == '"':
			state = quoteInQuoted
		case state == quoteInQuoted && c == '"':
			column.WriteRune(c)
			state = quoted
		case state == quoteInQuoted || state == start:
			column.WriteRune(c)
			state = unquoted
		default:
			column.WriteRune(c)
		}
	}
	return append(columns, column.String())
}
