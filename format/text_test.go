package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct{ name string }

func (n named) String() string { return "named:" + n.name }

func TestDecodeText_ChunkSizeDoesNotChangeResult(t *testing.T) {
	content := "first line\nsecond line\r\nthird line without newline"

	for _, chunk := range []int{0, 1, 2, 7, 64, 4096} {
		got, err := DecodeText(strings.NewReader(content), chunk)
		require.NoError(t, err, "chunk %d", chunk)
		assert.Equal(t, content, got, "chunk %d", chunk)

		lines, err := DecodeLines(iotest.OneByteReader(strings.NewReader(content)), chunk)
		require.NoError(t, err, "chunk %d", chunk)
		assert.Equal(t, []string{"first line", "second line", "third line without newline"}, lines, "chunk %d", chunk)
	}
}

func TestDecodeText_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := DecodeText(iotest.ErrReader(boom), 16)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"\n", []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.input), "SplitLines(%q)", tt.input)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{"plain", "plain"},
		{[]byte("bytes"), "bytes"},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
		{named{"x"}, "named:x"},
		{nil, ""},
		{[]int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stringify(tt.input))
	}
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, 12))
	require.NoError(t, EncodeText(&buf, "ab"))
	assert.Equal(t, "12ab", buf.String())
}
