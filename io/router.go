package io

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrBackendNotConfigured is returned when a path addresses a backend the
// router was not given.
var ErrBackendNotConfigured = errors.New("storage backend not configured")

// Router dispatches paths to a backend by URI scheme: s3:// and s3a:// go to
// the S3 backend, everything else to the local one.
type Router struct {
	local FileIO
	s3    FileIO
}

// NewRouter creates a router. Either backend may be nil.
func NewRouter(local, s3 FileIO) *Router {
	return &Router{local: local, s3: s3}
}

// IsS3Path reports whether path uses an S3 scheme.
func IsS3Path(path string) bool {
	return strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "s3a://")
}

func (r *Router) backend(path string) (FileIO, error) {
	if IsS3Path(path) {
		if r.s3 == nil {
			return nil, fmt.Errorf("%w: s3 path %s", ErrBackendNotConfigured, path)
		}
		return r.s3, nil
	}
	if r.local == nil {
		return nil, fmt.Errorf("%w: local path %s", ErrBackendNotConfigured, path)
	}
	return r.local, nil
}

// Open opens a file for reading.
func (r *Router) Open(ctx context.Context, path string) (InputFile, error) {
	b, err := r.backend(path)
	if err != nil {
		return nil, err
	}
	return b.Open(ctx, path)
}

// Create prepares a file for writing.
func (r *Router) Create(ctx context.Context, path string) (OutputFile, error) {
	b, err := r.backend(path)
	if err != nil {
		return nil, err
	}
	return b.Create(ctx, path)
}

// Delete deletes a file.
func (r *Router) Delete(ctx context.Context, path string) error {
	b, err := r.backend(path)
	if err != nil {
		return err
	}
	return b.Delete(ctx, path)
}

// Exists checks if a file exists.
func (r *Router) Exists(ctx context.Context, path string) (bool, error) {
	b, err := r.backend(path)
	if err != nil {
		return false, err
	}
	return b.Exists(ctx, path)
}

// Properties returns the merged properties of the configured backends.
func (r *Router) Properties() map[string]string {
	props := map[string]string{"backend": "router"}
	if r.local != nil {
		props["local"] = r.local.Properties()["backend"]
	}
	if r.s3 != nil {
		props["s3"] = r.s3.Properties()["backend"]
	}
	return props
}
