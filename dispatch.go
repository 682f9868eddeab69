package commonfunc

import (
	"context"
	"fmt"

	"github.com/BrobridgeOrg/go-commonfunc/format"
	"github.com/BrobridgeOrg/go-commonfunc/io"
)

// Content is the result of ReadByExtension. Only the field belonging to the
// chosen primitive is set.
type Content struct {
	Extension Extension

	Text  string
	Lines []string
	JSON  any
	Table *format.Table
}

// Value returns the populated field.
func (c *Content) Value() any {
	switch c.Extension {
	case ExtText, ExtLog, ExtScript:
		if c.Lines != nil {
			return c.Lines
		}
		return c.Text
	case ExtJSON:
		return c.JSON
	case ExtCSV:
		return c.Table
	default:
		return nil
	}
}

var defaultFiles = NewFilesWithIO(io.NewRouter(io.NewLocalFileIO(), nil))

// ReadByExtension reads a local file with the primitive matching its
// extension.
func ReadByExtension(ctx context.Context, path string, opts ...ReadOption) (*Content, error) {
	return defaultFiles.ReadByExtension(ctx, path, opts...)
}

// WriteByExtension writes a local file with the primitive matching its
// extension.
func WriteByExtension(ctx context.Context, path string, data any, mode io.WriteMode) error {
	return defaultFiles.WriteByExtension(ctx, path, data, mode)
}

// ReadByExtension reads path with the primitive matching its extension.
// Text, log and script files honour WithLines; CSV honours WithHeader,
// WithChunkSize and WithComma. Unknown extensions fail with
// UnsupportedTypeError.
func (f *Files) ReadByExtension(ctx context.Context, path string, opts ...ReadOption) (*Content, error) {
	ext, err := DetectExtension(path)
	if err != nil {
		return nil, err
	}

	o := f.readOptions(opts)
	content := &Content{Extension: ext}

	switch ext {
	case ExtText, ExtLog, ExtScript:
		if o.Lines {
			content.Lines, err = f.ReadLines(ctx, path, opts...)
		} else {
			content.Text, err = f.ReadText(ctx, path, opts...)
		}
	case ExtCSV:
		content.Table, err = f.ReadCSV(ctx, path, opts...)
	case ExtJSON:
		content.JSON, err = f.ReadJSON(ctx, path, opts...)
	default:
		return nil, &UnsupportedTypeError{Path: path, Extension: ExtensionOf(path)}
	}

	if err != nil {
		return nil, err
	}
	return content, nil
}

// WriteByExtension writes data to path with the primitive matching its
// extension, passing mode through unchanged. CSV data must be [][]string,
// a format.Table, or a slice of rows of any values.
func (f *Files) WriteByExtension(ctx context.Context, path string, data any, mode io.WriteMode) error {
	ext, err := DetectExtension(path)
	if err != nil {
		return err
	}

	switch ext {
	case ExtText, ExtLog, ExtScript:
		return f.WriteText(ctx, path, data, mode)
	case ExtCSV:
		rows, err := csvRows(data)
		if err != nil {
			return err
		}
		return f.WriteCSV(ctx, path, rows, mode)
	case ExtJSON:
		return f.WriteJSON(ctx, path, data, mode)
	default:
		return &UnsupportedTypeError{Path: path, Extension: ExtensionOf(path)}
	}
}

// csvRows converts supported CSV payloads to rows of strings.
func csvRows(data any) ([][]string, error) {
	switch v := data.(type) {
	case [][]string:
		return v, nil
	case *format.Table:
		if v == nil {
			return nil, fmt.Errorf("%w: nil table", ErrInvalidData)
		}
		return v.Records(), nil
	case format.Table:
		return v.Records(), nil
	case [][]any:
		rows := make([][]string, len(v))
		for i, row := range v {
			rows[i] = stringifyRow(row)
		}
		return rows, nil
	case []any:
		rows := make([][]string, len(v))
		for i, row := range v {
			switch r := row.(type) {
			case []string:
				rows[i] = r
			case []any:
				rows[i] = stringifyRow(r)
			default:
				return nil, fmt.Errorf("%w: csv row %d has type %T", ErrInvalidData, i, row)
			}
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: csv data has type %T", ErrInvalidData, data)
	}
}

func stringifyRow(row []any) []string {
	out := make([]string, len(row))
	for i, field := range row {
		out[i] = format.Stringify(field)
	}
	return out
}
