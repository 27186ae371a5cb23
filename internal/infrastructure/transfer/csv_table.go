package transferio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table reading errors
var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("invalid file encoding")
	ErrMissingHeader   = errors.New("CSV file missing header row")
)

// csvTable reads a headed CSV file into rows keyed by header name
type csvTable struct {
	name    string
	headers []string
	index   map[string]int
	reader  *csv.Reader
	line    int
}

// csvRow is one data row of a table
type csvRow struct {
	line   int
	fields map[string]string
}

// get returns the trimmed value of a column, or "" when the column is absent
func (r csvRow) get(header string) string {
	return r.fields[header]
}

func (r csvRow) empty() bool {
	for _, v := range r.fields {
		if v != "" {
			return false
		}
	}
	return true
}

// openCSVTable strips a UTF-8 BOM, checks the encoding and reads the header row
func openCSVTable(name string, data []byte) (*csvTable, error) {
	buf := bufio.NewReader(bytes.NewReader(data))

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	rest, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}
	if !utf8.Valid(rest) {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidEncoding)
	}

	r := csv.NewReader(buf)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	record, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	t := &csvTable{name: name, reader: r, line: 1, index: make(map[string]int, len(record))}
	for i, h := range record {
		h = strings.TrimSpace(h)
		t.headers = append(t.headers, h)
		t.index[h] = i
	}
	return t, nil
}

// require reports the first missing header
func (t *csvTable) require(headers ...string) error {
	for _, h := range headers {
		if _, ok := t.index[h]; !ok {
			return fmt.Errorf("%s: missing column %q", t.name, h)
		}
	}
	return nil
}

// rows reads every remaining non-empty row
func (t *csvTable) rows() ([]csvRow, error) {
	var out []csvRow
	for {
		record, err := t.reader.Read()
		if err == io.EOF {
			return out, nil
		}
		t.line++
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", t.name, t.line, err)
		}

		row := csvRow{line: t.line, fields: make(map[string]string, len(t.headers))}
		for i, h := range t.headers {
			if i < len(record) {
				row.fields[h] = strings.TrimSpace(record[i])
			}
		}
		if !row.empty() {
			out = append(out, row)
		}
	}
}
