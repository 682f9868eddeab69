package commonfunc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	goio "io"
	"io/fs"
	"log/slog"

	"github.com/BrobridgeOrg/go-commonfunc/format"
	"github.com/BrobridgeOrg/go-commonfunc/io"
)

// Files reads and writes whole files whose format is chosen by extension.
// It keeps no per-file state; every call opens and releases its own handle.
type Files struct {
	config *Config
	io     io.FileIO
	logger *slog.Logger
}

// NewFiles creates a Files handle with the given configuration.
func NewFiles(ctx context.Context, opts ...Option) (*Files, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fileIO, err := createFileIO(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create file IO: %w", err)
	}

	return newFiles(config, fileIO), nil
}

// NewFilesWithIO creates a Files handle over an existing FileIO. Storage
// options are ignored.
func NewFilesWithIO(fileIO io.FileIO, opts ...Option) *Files {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return newFiles(config, fileIO)
}

func newFiles(config *Config, fileIO io.FileIO) *Files {
	logger := config.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}
	return &Files{
		config: config,
		io:     fileIO,
		logger: logger,
	}
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.TextChunkSize < 0 {
		return fmt.Errorf("%w: text chunk size must not be negative", ErrInvalidConfig)
	}
	if config.CSVChunkSize < 0 {
		return fmt.Errorf("%w: csv chunk size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// createFileIO creates a file IO based on the configuration.
func createFileIO(ctx context.Context, config *Config) (io.FileIO, error) {
	local := io.NewLocalFileIO()

	switch config.StorageType {
	case StorageS3:
		cfg := config.S3Config
		if cfg == nil {
			cfg = &S3Config{}
		}
		s3IO, err := io.NewS3FileIO(ctx, &io.S3Config{
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			SessionToken:    cfg.SessionToken,
			ForcePathStyle:  cfg.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return io.NewRouter(local, s3IO), nil
	case StorageLocal, "":
		return io.NewRouter(local, nil), nil
	default:
		return nil, fmt.Errorf("%w: unsupported storage type: %s", ErrInvalidConfig, config.StorageType)
	}
}

// Config returns the configuration.
func (f *Files) Config() *Config {
	return f.config
}

// FileIO returns the underlying file I/O handler.
func (f *Files) FileIO() io.FileIO {
	return f.io
}

func (f *Files) readOptions(opts []ReadOption) *ReadOptions {
	o := &ReadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (f *Files) textChunk(o *ReadOptions) int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return f.config.TextChunkSize
}

func (f *Files) csvOptions(o *ReadOptions) format.CSVOptions {
	chunk := o.ChunkSize
	if chunk <= 0 {
		chunk = f.config.CSVChunkSize
	}
	return format.CSVOptions{ChunkSize: chunk, HasHeader: o.HasHeader, Comma: o.Comma}
}

// read opens path, hands the stream to decode and always closes it.
func (f *Files) read(ctx context.Context, path, kind string, decode func(r goio.Reader) error) error {
	in, err := f.io.Open(ctx, path)
	if err != nil {
		return readError(path, kind, err)
	}

	r, err := in.Open(ctx)
	if err != nil {
		return readError(path, kind, err)
	}
	defer r.Close()

	if err := decode(r); err != nil {
		return readError(path, kind, err)
	}
	return nil
}

func readError(path, kind string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &FileNotFoundError{Path: path, Cause: err}
	case errors.Is(err, format.ErrMalformed):
		return &DecodeError{Format: kind, Path: path, Cause: err}
	default:
		return &IOError{Operation: "read " + kind, Path: path, Cause: err}
	}
}

// write encodes the content up front, then writes it with one call so an
// encoding failure never truncates the target.
func (f *Files) write(ctx context.Context, path, kind string, mode io.WriteMode, encode func(w goio.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return f.writeFailed(path, kind, fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	out, err := f.io.Create(ctx, path)
	if err != nil {
		return f.writeFailed(path, kind, err)
	}

	w, err := out.Writer(ctx, mode.Normalize())
	if err != nil {
		return f.writeFailed(path, kind, err)
	}

	_, err = w.Write(buf.Bytes())
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return f.writeFailed(path, kind, err)
	}
	return nil
}

func (f *Files) writeFailed(path, kind string, err error) error {
	f.logger.Debug("write failed", "path", path, "format", kind, "error", err)
	return &IOError{Operation: "write " + kind, Path: path, Cause: err}
}

// ReadText returns the whole file as one string.
func (f *Files) ReadText(ctx context.Context, path string, opts ...ReadOption) (string, error) {
	o := f.readOptions(opts)
	var text string
	err := f.read(ctx, path, "text", func(r goio.Reader) (err error) {
		text, err = format.DecodeText(r, f.textChunk(o))
		return err
	})
	return text, err
}

// ReadLines returns the file's lines without their terminators.
func (f *Files) ReadLines(ctx context.Context, path string, opts ...ReadOption) ([]string, error) {
	o := f.readOptions(opts)
	var lines []string
	err := f.read(ctx, path, "text", func(r goio.Reader) (err error) {
		lines, err = format.DecodeLines(r, f.textChunk(o))
		return err
	})
	return lines, err
}

// ReadJSON parses the file as a single JSON document.
func (f *Files) ReadJSON(ctx context.Context, path string, opts ...ReadOption) (any, error) {
	o := f.readOptions(opts)
	var v any
	err := f.read(ctx, path, "json", func(r goio.Reader) (err error) {
		v, err = format.DecodeJSON(r, f.textChunk(o))
		return err
	})
	return v, err
}

// ReadCSV parses the file as UTF-8 CSV grouped into row-groups.
func (f *Files) ReadCSV(ctx context.Context, path string, opts ...ReadOption) (*format.Table, error) {
	o := f.readOptions(opts)
	var table *format.Table
	err := f.read(ctx, path, "csv", func(r goio.Reader) (err error) {
		table, err = format.DecodeCSV(r, f.csvOptions(o))
		return err
	})
	return table, err
}

// WriteText writes the text form of data.
func (f *Files) WriteText(ctx context.Context, path string, data any, mode io.WriteMode) error {
	return f.write(ctx, path, "text", mode, func(w goio.Writer) error {
		return format.EncodeText(w, data)
	})
}

// WriteJSON serializes v as JSON.
func (f *Files) WriteJSON(ctx context.Context, path string, v any, mode io.WriteMode) error {
	return f.write(ctx, path, "json", mode, func(w goio.Writer) error {
		return format.EncodeJSON(w, v)
	})
}

// WriteCSV writes rows as CSV records.
func (f *Files) WriteCSV(ctx context.Context, path string, rows [][]string, mode io.WriteMode) error {
	return f.write(ctx, path, "csv", mode, func(w goio.Writer) error {
		return format.EncodeCSV(w, rows, format.CSVOptions{})
	})
}
