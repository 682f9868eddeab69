package commonfunc

import (
	"context"
	"errors"

	"github.com/BrobridgeOrg/go-commonfunc/convert"
	"github.com/BrobridgeOrg/go-commonfunc/format"
	"github.com/BrobridgeOrg/go-commonfunc/io"
)

type tableWriter func(ctx context.Context, fileIO io.FileIO, table *format.Table, path string) error

var tableWriters = map[string]tableWriter{
	".parquet": convert.CSVToParquet,
	".avro":    convert.CSVToAvro,
}

// ConvertCSV reads the CSV file at src and writes it to dst in the format
// named by dst's extension, ".parquet" or ".avro". Read options apply to
// the CSV source; use WithHeader to name the columns.
func (f *Files) ConvertCSV(ctx context.Context, src, dst string, opts ...ReadOption) error {
	if ext, err := DetectExtension(src); err != nil {
		return err
	} else if ext != ExtCSV {
		return &UnsupportedTypeError{Path: src, Extension: ExtensionOf(src)}
	}

	target := ExtensionOf(dst)
	write, ok := tableWriters[target]
	if !ok {
		return &UnsupportedTypeError{Path: dst, Extension: target}
	}

	table, err := f.ReadCSV(ctx, src, opts...)
	if err != nil {
		return err
	}

	if err := write(ctx, f.io, table, dst); err != nil {
		if errors.Is(err, convert.ErrRowTooLong) || errors.Is(err, convert.ErrNoColumns) {
			err = errors.Join(ErrInvalidData, err)
		}
		return f.writeFailed(dst, target[1:], err)
	}
	return nil
}
