package io

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeAll(t *testing.T, fileIO FileIO, path string, mode WriteMode, content []byte) {
	t.Helper()
	ctx := context.Background()

	outputFile, err := fileIO.Create(ctx, path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	writer, err := outputFile.Writer(ctx, mode)
	if err != nil {
		t.Fatalf("Writer failed: %v", err)
	}

	n, err := writer.Write(content)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(content) {
		t.Errorf("Write n = %d, want %d", n, len(content))
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close writer failed: %v", err)
	}
}

func TestLocalFileIO_CreateAndOpen(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	testPath := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("Hello, files!")

	writeAll(t, fileIO, testPath, Truncate, testContent)

	inputFile, err := fileIO.Open(ctx, testPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	length, err := inputFile.Length(ctx)
	if err != nil {
		t.Fatalf("Length failed: %v", err)
	}
	if length != int64(len(testContent)) {
		t.Errorf("Length = %d, want %d", length, len(testContent))
	}

	reader, err := inputFile.Open(ctx)
	if err != nil {
		t.Fatalf("Open reader failed: %v", err)
	}
	defer reader.Close()

	readContent, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(readContent, testContent) {
		t.Errorf("Content mismatch: got %s, want %s", readContent, testContent)
	}
}

func TestLocalFileIO_OpenMissing(t *testing.T) {
	ctx := context.Background()
	fileIO := NewLocalFileIO()

	inputFile, err := fileIO.Open(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	_, err = inputFile.Open(ctx)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open error = %v, want fs.ErrNotExist", err)
	}
}

func TestLocalFileIO_Delete(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	testPath := filepath.Join(tmpDir, "delete_test.txt")

	if err := os.WriteFile(testPath, []byte("test"), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := fileIO.Delete(ctx, testPath); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := os.Stat(testPath); !os.IsNotExist(err) {
		t.Error("File should be deleted")
	}
}

func TestLocalFileIO_Exists(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	existingPath := filepath.Join(tmpDir, "exists.txt")
	nonExistingPath := filepath.Join(tmpDir, "not_exists.txt")

	if err := os.WriteFile(existingPath, []byte("test"), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	exists, err := fileIO.Exists(ctx, existingPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("File should exist")
	}

	exists, err = fileIO.Exists(ctx, "file://"+nonExistingPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("File should not exist")
	}
}

func TestLocalFileIO_MissingParentDirectory(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	nestedPath := filepath.Join(tmpDir, "a", "b", "test.txt")

	outputFile, err := fileIO.Create(ctx, nestedPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := outputFile.Writer(ctx, Truncate); err == nil {
		t.Fatal("Writer should fail when the parent directory is missing")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "a")); !os.IsNotExist(err) {
		t.Error("parent directory should not be created")
	}
}

func TestLocalFileIO_Location(t *testing.T) {
	ctx := context.Background()
	testPath := filepath.Join(t.TempDir(), "location_test.txt")

	fileIO := NewLocalFileIO()

	inputFile, err := fileIO.Open(ctx, "file://"+testPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if location := inputFile.Location(); location != testPath {
		t.Errorf("Location = %s, want %s", location, testPath)
	}

	outputFile, err := fileIO.Create(ctx, testPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if location := outputFile.ToInputFile().Location(); location != testPath {
		t.Errorf("ToInputFile().Location = %s, want %s", location, testPath)
	}
}

func TestLocalFileIO_TruncateWrites(t *testing.T) {
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	testPath := filepath.Join(tmpDir, "multi_write.txt")

	writeAll(t, fileIO, testPath, Truncate, []byte("First content - longer"))
	writeAll(t, fileIO, testPath, Truncate, []byte("Second"))

	data, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "Second" {
		t.Errorf("Content = %s, want %s", data, "Second")
	}
}

func TestLocalFileIO_AppendWrites(t *testing.T) {
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	testPath := filepath.Join(tmpDir, "append.txt")

	writeAll(t, fileIO, testPath, Append, []byte("a"))
	writeAll(t, fileIO, testPath, Append, []byte("b"))

	data, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "ab" {
		t.Errorf("Content = %s, want %s", data, "ab")
	}
}

func TestLocalFileIO_EmptyFile(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	fileIO := NewLocalFileIO()
	testPath := filepath.Join(tmpDir, "empty.txt")

	writeAll(t, fileIO, testPath, Truncate, nil)

	inputFile, err := fileIO.Open(ctx, testPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	length, err := inputFile.Length(ctx)
	if err != nil {
		t.Fatalf("Length failed: %v", err)
	}
	if length != 0 {
		t.Errorf("Length = %d, want 0", length)
	}
}
