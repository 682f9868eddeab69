// Package texthash derives stable identifiers from text.
package texthash

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Kind selects the identifier form.
type Kind string

const (
	// General is the plain hex digest.
	General Kind = "general"

	// Example is the hex digest prefixed with "ex".
	Example Kind = "example"
)

// ErrUnknownKind is returned for kinds other than General and Example.
var ErrUnknownKind = errors.New("unknown hash kind")

// Text returns the MD5 hex digest of text's UTF-8 bytes in the given form.
func Text(text string, kind Kind) (string, error) {
	sum := md5.Sum([]byte(text))
	digest := hex.EncodeToString(sum[:])

	switch kind {
	case General:
		return digest, nil
	case Example:
		return "ex" + digest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
