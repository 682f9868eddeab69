// Package format holds the stream codecs behind the file helpers: plain and
// line-oriented text, JSON, and row-grouped CSV.
//
// Codecs work on io.Reader and io.Writer only. Opening and closing files is
// the caller's business.
package format

import (
	"errors"
	"fmt"
	"io"
)

// ErrMalformed marks content that was read successfully but could not be
// decoded.
var ErrMalformed = errors.New("malformed content")

// readAll reads r to EOF. A positive chunkSize reads through a buffer of that
// many bytes; the result is the same either way.
func readAll(r io.Reader, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 {
		return io.ReadAll(r)
	}

	var out []byte
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func malformed(kind string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
}
