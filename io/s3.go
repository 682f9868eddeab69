package io

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds S3 configuration.
type S3Config struct {
	Region          string
	Endpoint        string // For MinIO or other S3-compatible services
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ForcePathStyle  bool // Required for MinIO
}

// S3FileIO implements FileIO for S3.
type S3FileIO struct {
	client     *s3.Client
	properties map[string]string
}

// NewS3FileIO creates a new S3 file I/O handler.
func NewS3FileIO(ctx context.Context, cfg *S3Config) (*S3FileIO, error) {
	if cfg == nil {
		cfg = &S3Config{}
	}

	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			cfg.SessionToken,
		)
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)

	if cfg.Endpoint != "" {
		// S3-compatible services often reject the SDK's default checksums.
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		})
	}

	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return NewS3FileIOFromClient(s3.NewFromConfig(awsCfg, s3Opts...)), nil
}

// NewS3FileIOFromClient wraps an existing S3 client.
func NewS3FileIOFromClient(client *s3.Client) *S3FileIO {
	return &S3FileIO{
		client:     client,
		properties: map[string]string{"backend": "s3"},
	}
}

// parseS3URI parses an S3 URI into bucket and key.
func parseS3URI(uri string) (bucket, key string, err error) {
	// Handle both s3:// and s3a:// URIs
	uri = strings.TrimPrefix(uri, "s3a://")
	uri = strings.TrimPrefix(uri, "s3://")

	u, err := url.Parse("s3://" + uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URI: %w", err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")

	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in S3 URI")
	}
	if key == "" {
		return "", "", fmt.Errorf("missing key in S3 URI")
	}

	return bucket, key, nil
}

// isNotFound reports whether an S3 error means the object does not exist.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "404")
}

// Open opens a file for reading.
func (s *S3FileIO) Open(ctx context.Context, path string) (InputFile, error) {
	bucket, key, err := parseS3URI(path)
	if err != nil {
		return nil, err
	}

	return &s3InputFile{
		client: s.client,
		bucket: bucket,
		key:    key,
		path:   path,
	}, nil
}

// Create prepares a file for writing.
func (s *S3FileIO) Create(ctx context.Context, path string) (OutputFile, error) {
	bucket, key, err := parseS3URI(path)
	if err != nil {
		return nil, err
	}

	return &s3OutputFile{
		client: s.client,
		bucket: bucket,
		key:    key,
		path:   path,
	}, nil
}

// Delete deletes a file.
func (s *S3FileIO) Delete(ctx context.Context, path string) error {
	bucket, key, err := parseS3URI(path)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

// Exists checks if a file exists.
func (s *S3FileIO) Exists(ctx context.Context, path string) (bool, error) {
	in, err := s.Open(ctx, path)
	if err != nil {
		return false, err
	}
	return in.Exists(ctx)
}

// Properties returns the properties of this FileIO.
func (s *S3FileIO) Properties() map[string]string {
	return s.properties
}

// s3InputFile implements InputFile for S3.
type s3InputFile struct {
	client *s3.Client
	bucket string
	key    string
	path   string
}

func (f *s3InputFile) Location() string {
	return f.path
}

func (f *s3InputFile) Exists(ctx context.Context) (bool, error) {
	_, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *s3InputFile) Length(ctx context.Context) (int64, error) {
	resp, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%s: %w", f.path, fs.ErrNotExist)
		}
		return 0, err
	}
	if resp.ContentLength != nil {
		return *resp.ContentLength, nil
	}
	return 0, nil
}

func (f *s3InputFile) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("open %s: %w", f.path, fs.ErrNotExist)
		}
		return nil, err
	}
	return resp.Body, nil
}

// s3OutputFile implements OutputFile for S3.
type s3OutputFile struct {
	client *s3.Client
	bucket string
	key    string
	path   string
}

func (f *s3OutputFile) Location() string {
	return f.path
}

// Writer buffers the object in memory and uploads it on Close. In append
// mode the current object, if any, seeds the buffer.
func (f *s3OutputFile) Writer(ctx context.Context, mode WriteMode) (io.WriteCloser, error) {
	buf := new(bytes.Buffer)

	if mode.Normalize() == Append {
		r, err := f.ToInputFile().Open(ctx)
		switch {
		case err == nil:
			_, err = buf.ReadFrom(r)
			r.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read existing object: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	return &s3Writer{
		client: f.client,
		bucket: f.bucket,
		key:    f.key,
		buffer: buf,
		ctx:    ctx,
	}, nil
}

func (f *s3OutputFile) ToInputFile() InputFile {
	return &s3InputFile{
		client: f.client,
		bucket: f.bucket,
		key:    f.key,
		path:   f.path,
	}
}

// s3Writer buffers writes and uploads on close.
type s3Writer struct {
	client *s3.Client
	bucket string
	key    string
	buffer *bytes.Buffer
	ctx    context.Context
	closed bool
}

func (w *s3Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buffer.Write(p)
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buffer.Bytes()),
	})
	return err
}
