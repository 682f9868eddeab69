package format

import (
	"io"

	"github.com/goccy/go-json"
)

// DecodeJSON parses the whole of r as one JSON document.
func DecodeJSON(r io.Reader, chunkSize int) (any, error) {
	data, err := readAll(r, chunkSize)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, malformed("json", err)
	}
	return v, nil
}

// EncodeJSON serializes v and writes it to w in a single call.
func EncodeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
