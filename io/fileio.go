// Package io provides path-addressed file access for local disk and S3.
package io

import (
	"context"
	"io"
)

// FileIO is the interface for file operations.
type FileIO interface {
	// Open opens a file for reading.
	Open(ctx context.Context, path string) (InputFile, error)

	// Create prepares a file for writing.
	Create(ctx context.Context, path string) (OutputFile, error)

	// Delete deletes a file.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Properties returns the properties of this FileIO.
	Properties() map[string]string
}

// InputFile represents a readable file.
type InputFile interface {
	// Location returns the file location.
	Location() string

	// Exists checks if the file exists.
	Exists(ctx context.Context) (bool, error)

	// Length returns the file length in bytes.
	Length(ctx context.Context) (int64, error)

	// Open opens the file for reading. A missing file yields an error
	// matching fs.ErrNotExist.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// OutputFile represents a writable file.
type OutputFile interface {
	// Location returns the file location.
	Location() string

	// Writer opens the file for writing in the given mode. Missing parent
	// directories are not created.
	Writer(ctx context.Context, mode WriteMode) (io.WriteCloser, error)

	// ToInputFile converts this to an InputFile after writing.
	ToInputFile() InputFile
}
