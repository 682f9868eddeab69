// Package convert turns decoded CSV tables into columnar and row-oriented
// binary formats and reads them back.
//
// Every column is written as a string. Parquet files get one row-group per
// table row-group; Avro files are object container files with deflate
// blocks.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BrobridgeOrg/go-commonfunc/format"
	fileio "github.com/BrobridgeOrg/go-commonfunc/io"
)

var (
	// ErrRowTooLong is returned when a row has more fields than the header.
	ErrRowTooLong = errors.New("row has more fields than columns")

	// ErrNoColumns is returned when a table has neither a header nor rows.
	ErrNoColumns = errors.New("table has no columns")
)

// columnNames returns one name per column. Header names are kept when
// present; missing or duplicate names become column_N.
func columnNames(table *format.Table) ([]string, error) {
	width := len(table.Header)
	if table.Header == nil {
		for _, g := range table.Groups {
			for _, row := range g {
				width = max(width, len(row))
			}
		}
	}
	if width == 0 {
		return nil, ErrNoColumns
	}

	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := range names {
		name := ""
		if i < len(table.Header) {
			name = strings.TrimSpace(table.Header[i])
		}
		if name == "" || seen[name] {
			name = "column_" + strconv.Itoa(i+1)
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}

// padRow returns row widened to width with empty fields.
func padRow(row []string, width, index int) ([]string, error) {
	if len(row) > width {
		return nil, fmt.Errorf("%w: row %d has %d fields, want at most %d", ErrRowTooLong, index, len(row), width)
	}
	if len(row) == width {
		return row, nil
	}
	out := make([]string, width)
	copy(out, row)
	return out, nil
}

// writeFile stores the encoded bytes at path, replacing any existing file.
func writeFile(ctx context.Context, fileIO fileio.FileIO, path string, data []byte) error {
	out, err := fileIO.Create(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := out.Writer(ctx, fileio.Truncate)
	if err != nil {
		return fmt.Errorf("failed to get writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Close()
}

// readFile loads the whole file at path.
func readFile(ctx context.Context, fileIO fileio.FileIO, path string) ([]byte, error) {
	in, err := fileIO.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	r, err := in.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
