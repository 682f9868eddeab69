package commonfunc

import (
	"path/filepath"
	"strings"
)

// Extension is the closed set of file types the dispatch functions handle.
type Extension int

const (
	ExtUnknown Extension = iota
	ExtText
	ExtJSON
	ExtCSV
	ExtLog
	ExtScript
)

var extensionTokens = map[string]Extension{
	".txt":  ExtText,
	".json": ExtJSON,
	".csv":  ExtCSV,
	".log":  ExtLog,
	".py":   ExtScript,
}

// String returns the suffix for the extension.
func (e Extension) String() string {
	switch e {
	case ExtText:
		return ".txt"
	case ExtJSON:
		return ".json"
	case ExtCSV:
		return ".csv"
	case ExtLog:
		return ".log"
	case ExtScript:
		return ".py"
	default:
		return "unknown"
	}
}

// IsText reports whether the extension is handled by the text primitive.
func (e Extension) IsText() bool {
	return e == ExtText || e == ExtLog || e == ExtScript
}

// ExtensionOf returns the suffix of the last path segment starting at its
// last dot, case preserved. Names whose only dot is the leading one, such as
// ".bashrc", have no extension. No I/O is performed.
func ExtensionOf(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/"+string(filepath.Separator)); i >= 0 {
		base = base[i+1:]
	}

	dot := strings.LastIndex(base, ".")
	if dot <= 0 {
		return ""
	}
	if strings.Trim(base[:dot], ".") == "" {
		return ""
	}
	return base[dot:]
}

// ParseExtension maps a suffix token such as ".csv" to its Extension.
// Matching is exact, so ".CSV" is unknown.
func ParseExtension(token string) Extension {
	if ext, ok := extensionTokens[token]; ok {
		return ext
	}
	return ExtUnknown
}

// DetectExtension returns the Extension of path, or an UnsupportedTypeError.
func DetectExtension(path string) (Extension, error) {
	token := ExtensionOf(path)
	ext := ParseExtension(token)
	if ext == ExtUnknown {
		return ExtUnknown, &UnsupportedTypeError{Path: path, Extension: token}
	}
	return ext, nil
}
