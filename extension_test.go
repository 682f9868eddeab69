package commonfunc

import (
	"errors"
	"testing"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data.csv", ".csv"},
		{"/var/log/app.log", ".log"},
		{"archive.tar.gz", ".gz"},
		{"Report.JSON", ".JSON"},
		{"no_extension", ""},
		{"", ""},
		{".bashrc", ""},
		{"...txt", ""},
		{"..a.b", ".b"},
		{"trailing.", "."},
		{"dir.d/file", ""},
		{"s3://bucket/key/rows.csv", ".csv"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ExtensionOf(tt.path); got != tt.want {
				t.Errorf("ExtensionOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseExtension(t *testing.T) {
	tests := []struct {
		token string
		want  Extension
	}{
		{".txt", ExtText},
		{".json", ExtJSON},
		{".csv", ExtCSV},
		{".log", ExtLog},
		{".py", ExtScript},
		{".CSV", ExtUnknown},
		{".xyz", ExtUnknown},
		{"", ExtUnknown},
	}

	for _, tt := range tests {
		if got := ParseExtension(tt.token); got != tt.want {
			t.Errorf("ParseExtension(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestExtensionString(t *testing.T) {
	for token, ext := range extensionTokens {
		if ext.String() != token {
			t.Errorf("%d.String() = %q, want %q", ext, ext.String(), token)
		}
	}
	if ExtUnknown.String() != "unknown" {
		t.Errorf("ExtUnknown.String() = %q", ExtUnknown.String())
	}
}

func TestDetectExtension_Unsupported(t *testing.T) {
	_, err := DetectExtension("/tmp/file.xyz")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("DetectExtension error = %v, want ErrUnsupportedType", err)
	}

	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error should be *UnsupportedTypeError, got %T", err)
	}
	if unsupported.Extension != ".xyz" {
		t.Errorf("Extension = %q, want .xyz", unsupported.Extension)
	}

	if _, err := DetectExtension("Makefile"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("DetectExtension(Makefile) error = %v, want ErrUnsupportedType", err)
	}
}
