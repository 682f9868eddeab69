package io

import (
	"context"
	"io"
	"os"
	"strings"
)

// LocalFileIO implements FileIO for local filesystem.
type LocalFileIO struct {
	properties map[string]string
}

// NewLocalFileIO creates a new local file I/O handler.
func NewLocalFileIO() *LocalFileIO {
	return &LocalFileIO{
		properties: map[string]string{"backend": "local"},
	}
}

// Open opens a file for reading.
func (l *LocalFileIO) Open(ctx context.Context, path string) (InputFile, error) {
	return &localInputFile{path: normalizePath(path)}, nil
}

// Create prepares a file for writing.
func (l *LocalFileIO) Create(ctx context.Context, path string) (OutputFile, error) {
	return &localOutputFile{path: normalizePath(path)}, nil
}

// Delete deletes a file.
func (l *LocalFileIO) Delete(ctx context.Context, path string) error {
	return os.Remove(normalizePath(path))
}

// Exists checks if a file exists.
func (l *LocalFileIO) Exists(ctx context.Context, path string) (bool, error) {
	return statExists(normalizePath(path))
}

// Properties returns the properties of this FileIO.
func (l *LocalFileIO) Properties() map[string]string {
	return l.properties
}

// normalizePath removes file:// prefix if present.
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "file://")
}

func statExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// localInputFile implements InputFile for local filesystem.
type localInputFile struct {
	path string
}

func (f *localInputFile) Location() string {
	return f.path
}

func (f *localInputFile) Exists(ctx context.Context) (bool, error) {
	return statExists(f.path)
}

func (f *localInputFile) Length(ctx context.Context) (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (f *localInputFile) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(f.path)
}

// localOutputFile implements OutputFile for local filesystem.
type localOutputFile struct {
	path string
}

func (f *localOutputFile) Location() string {
	return f.path
}

func (f *localOutputFile) Writer(ctx context.Context, mode WriteMode) (io.WriteCloser, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if mode.Normalize() == Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(f.path, flags, 0644)
}

func (f *localOutputFile) ToInputFile() InputFile {
	return &localInputFile{path: f.path}
}
