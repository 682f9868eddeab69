package io

// WriteMode selects how an existing file is treated when writing.
type WriteMode string

const (
	// Truncate replaces any existing content.
	Truncate WriteMode = "w"
	// Append adds to the end of existing content.
	Append WriteMode = "a"
)

// ParseWriteMode maps a mode token to a WriteMode. Anything other than "a"
// or "w" is treated as Truncate.
func ParseWriteMode(s string) WriteMode {
	switch WriteMode(s) {
	case Append:
		return Append
	default:
		return Truncate
	}
}

// Normalize returns m if it is a known mode and Truncate otherwise.
func (m WriteMode) Normalize() WriteMode {
	return ParseWriteMode(string(m))
}

// String returns the mode token.
func (m WriteMode) String() string {
	return string(m)
}
