package commonfunc

import (
	"io"
	"log/slog"

	"github.com/BrobridgeOrg/go-commonfunc/format"
)

// StorageType represents supported storage backends.
type StorageType string

const (
	// StorageLocal represents local filesystem storage.
	StorageLocal StorageType = "local"
	// StorageS3 represents Amazon S3 storage. Local paths stay available.
	StorageS3 StorageType = "s3"
)

// Config holds the Files configuration.
type Config struct {
	// Storage configuration
	StorageType StorageType
	S3Config    *S3Config

	// TextChunkSize is the read buffer size for text and JSON files. Zero
	// reads each file in one call.
	TextChunkSize int

	// CSVChunkSize is the default number of data rows per CSV row-group.
	CSVChunkSize int

	Logger *slog.Logger
}

// S3Config holds S3-specific configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Endpoint        string // For MinIO, LocalStack, etc.
	ForcePathStyle  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		StorageType:  StorageLocal,
		CSVChunkSize: format.DefaultChunkSize,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for Files configuration.
type Option func(*Config)

// WithLocalStorage restricts Files to the local filesystem.
func WithLocalStorage() Option {
	return func(c *Config) {
		c.StorageType = StorageLocal
		c.S3Config = nil
	}
}

// WithS3 enables s3:// paths alongside local ones.
func WithS3(cfg *S3Config) Option {
	return func(c *Config) {
		c.StorageType = StorageS3
		c.S3Config = cfg
	}
}

// WithTextChunkSize sets the read buffer size for text and JSON files.
func WithTextChunkSize(size int) Option {
	return func(c *Config) {
		c.TextChunkSize = size
	}
}

// WithCSVChunkSize sets the default CSV row-group size.
func WithCSVChunkSize(size int) Option {
	return func(c *Config) {
		c.CSVChunkSize = size
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// ReadOptions holds per-call read settings.
type ReadOptions struct {
	Lines     bool
	HasHeader bool
	ChunkSize int
	Comma     rune
}

// ReadOption configures a single read.
type ReadOption func(*ReadOptions)

// WithLines returns text content as lines instead of one string.
func WithLines() ReadOption {
	return func(o *ReadOptions) {
		o.Lines = true
	}
}

// WithHeader consumes the first CSV record as the header.
func WithHeader() ReadOption {
	return func(o *ReadOptions) {
		o.HasHeader = true
	}
}

// WithChunkSize sets the chunk size for this read: rows per row-group for
// CSV, buffer bytes for text and JSON.
func WithChunkSize(size int) ReadOption {
	return func(o *ReadOptions) {
		o.ChunkSize = size
	}
}

// WithComma sets the CSV field delimiter.
func WithComma(r rune) ReadOption {
	return func(o *ReadOptions) {
		o.Comma = r
	}
}
