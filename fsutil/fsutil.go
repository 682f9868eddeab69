// Package fsutil holds small filesystem helpers for folders and file copies.
package fsutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Replacement replaces every occurrence of Old with New.
type Replacement struct {
	Old string
	New string
}

// CreateFolder creates path and any missing parents. It returns true when
// the folder was created and false when something already exists at path.
func CreateFolder(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		slog.Info("folder already exists", "path", path)
		return false, nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		slog.Error("failed to create folder", "path", path, "error", err)
		return false, fmt.Errorf("failed to create folder %s: %w", path, err)
	}

	slog.Info("folder created", "path", path)
	return true, nil
}

// CopyAndReplace copies src to dst and applies the replacements in order.
// dst may be a directory, in which case the file keeps its base name. It
// returns false without copying when src and dst are the same file.
func CopyAndReplace(src, dst string, replacements ...Replacement) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("failed to stat source: %w", err)
	}

	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return false, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("failed to read source: %w", err)
	}

	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		data = bytes.ReplaceAll(data, []byte(r.Old), []byte(r.New))
	}

	if err := writeFileAtomic(dst, data, srcInfo.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
