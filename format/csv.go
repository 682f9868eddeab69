package format

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultChunkSize is the number of data rows per row-group when none is set.
const DefaultChunkSize = 1000

// CSVOptions controls CSV decoding and encoding.
type CSVOptions struct {
	// ChunkSize is the number of data rows per row-group. Values <= 0 use
	// DefaultChunkSize.
	ChunkSize int

	// HasHeader consumes the first record as the header.
	HasHeader bool

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

func (o CSVOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

func (o CSVOptions) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// Table is a decoded CSV file. Data rows are split into row-groups of at most
// ChunkSize rows, counted from the first row after the header.
type Table struct {
	// Header is nil unless header extraction was requested.
	Header []string

	Groups [][][]string
}

// Elements returns the table as one outer sequence: the header row first
// when present, then each row-group.
func (t *Table) Elements() []any {
	out := make([]any, 0, len(t.Groups)+1)
	if t.Header != nil {
		out = append(out, t.Header)
	}
	for _, g := range t.Groups {
		out = append(out, g)
	}
	return out
}

// Rows returns the data rows in order, ignoring group boundaries.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, t.NumRows())
	for _, g := range t.Groups {
		rows = append(rows, g...)
	}
	return rows
}

// Records returns the header, if any, followed by the data rows.
func (t *Table) Records() [][]string {
	rows := t.Rows()
	if t.Header == nil {
		return rows
	}
	return append([][]string{t.Header}, rows...)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g)
	}
	return n
}

// GroupRows splits rows into consecutive groups of chunkSize rows.
func GroupRows(rows [][]string, chunkSize int) [][][]string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var groups [][][]string
	for i, row := range rows {
		if i%chunkSize == 0 {
			groups = append(groups, make([][]string, 0, min(chunkSize, len(rows)-i)))
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}
	return groups
}

// DecodeCSV reads UTF-8 CSV from r. A leading byte order mark is dropped.
// Records may have differing field counts.
func DecodeCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, malformed("csv", errors.New("content is not valid UTF-8"))
	}

	decoded := transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.Comma = opts.comma()
	reader.FieldsPerRecord = -1

	table := &Table{}
	if opts.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return nil, malformed("csv", errors.New("missing header row"))
		}
		if err != nil {
			return nil, malformed("csv", err)
		}
		table.Header = header
	}

	chunk := opts.chunkSize()
	for i := 0; ; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed("csv", err)
		}
		if i%chunk == 0 {
			table.Groups = append(table.Groups, [][]string{})
		}
		last := len(table.Groups) - 1
		table.Groups[last] = append(table.Groups[last], row)
	}

	return table, nil
}

// EncodeCSV writes each row as one record. Fields containing the delimiter,
// a quote or a line break are quoted.
func EncodeCSV(w io.Writer, rows [][]string, opts CSVOptions) error {
	writer := csv.NewWriter(w)
	writer.Comma = opts.comma()
	return writer.WriteAll(rows)
}
