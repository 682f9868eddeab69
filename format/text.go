package format

import (
	"fmt"
	"io"
	"strings"
)

// DecodeText returns everything in r as one string, byte for byte.
func DecodeText(r io.Reader, chunkSize int) (string, error) {
	data, err := readAll(r, chunkSize)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeLines returns the lines in r with their terminators removed.
func DecodeLines(r io.Reader, chunkSize int) ([]string, error) {
	text, err := DecodeText(r, chunkSize)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// SplitLines splits s on "\n", dropping a "\r" before each break. A trailing
// newline does not start an extra empty line, so "" has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}

	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Stringify renders data as text for the text writer.
func Stringify(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// EncodeText writes the text form of data to w.
func EncodeText(w io.Writer, data any) error {
	_, err := io.WriteString(w, Stringify(data))
	return err
}
