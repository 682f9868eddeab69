// Package units converts data sizes between bytes and decimal or binary
// units.
package units

import (
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Unit is a data size unit.
type Unit int

const (
	B Unit = iota
	KB
	MB
	GB
	TB
	PB
	KiB
	MiB
	GiB
	TiB
	PiB
)

var (
	// ErrInvalidSize is returned for negative, NaN or infinite sizes.
	ErrInvalidSize = errors.New("invalid size")

	// ErrUnknownUnit is returned for units outside B..PiB.
	ErrUnknownUnit = errors.New("unknown unit")
)

var unitNames = [...]string{"B", "kB", "MB", "GB", "TB", "PB", "KiB", "MiB", "GiB", "TiB", "PiB"}

// String returns the unit symbol, e.g. "kB" or "MiB".
func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

func (u Unit) valid() bool {
	return u >= B && u <= PiB
}

// Binary reports whether u is a power of 1024.
func (u Unit) Binary() bool {
	return u >= KiB && u <= PiB
}

// Bytes returns the number of bytes in one u.
func (u Unit) Bytes() float64 {
	if u.Binary() {
		return math.Pow(1024, float64(u-KiB+1))
	}
	return math.Pow(1000, float64(u))
}

// ParseUnit returns the unit with the given symbol. Matching is exact.
func ParseUnit(s string) (Unit, error) {
	for i, name := range unitNames {
		if name == s {
			return Unit(i), nil
		}
	}
	return B, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

func check(size float64, units ...Unit) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	for _, u := range units {
		if !u.valid() {
			return fmt.Errorf("%w: %d", ErrUnknownUnit, int(u))
		}
	}
	return nil
}

// FromBytes converts a byte count to target.
func FromBytes(size float64, target Unit) (float64, error) {
	if err := check(size, target); err != nil {
		return 0, err
	}
	return size / target.Bytes(), nil
}

// ToBytes converts size expressed in unit to bytes.
func ToBytes(size float64, unit Unit) (float64, error) {
	if err := check(size, unit); err != nil {
		return 0, err
	}
	return size * unit.Bytes(), nil
}

// Convert converts size from one unit to another.
func Convert(size float64, from, to Unit) (float64, error) {
	b, err := ToBytes(size, from)
	if err != nil {
		return 0, err
	}
	return FromBytes(b, to)
}

// Format renders size with two decimals followed by the unit symbol.
func Format(size float64, unit Unit) string {
	return fmt.Sprintf("%.2f %s", size, unit)
}

// FormatFromBytes is FromBytes rendered with Format.
func FormatFromBytes(size float64, target Unit) (string, error) {
	v, err := FromBytes(size, target)
	if err != nil {
		return "", err
	}
	return Format(v, target), nil
}

// FormatToBytes is ToBytes rendered with Format in bytes.
func FormatToBytes(size float64, unit Unit) (string, error) {
	v, err := ToBytes(size, unit)
	if err != nil {
		return "", err
	}
	return Format(v, B), nil
}

// FormatConvert is Convert rendered with Format in the target unit.
func FormatConvert(size float64, from, to Unit) (string, error) {
	v, err := Convert(size, from, to)
	if err != nil {
		return "", err
	}
	return Format(v, to), nil
}

// Humanize renders a byte count in the largest fitting unit, such as
// "83 MB" or "79 MiB" when binary is set.
func Humanize(size uint64, binary bool) string {
	if binary {
		return humanize.IBytes(size)
	}
	return humanize.Bytes(size)
}

// ParseSize parses strings such as "42 MB", "1.5GiB" or "1024" into bytes.
func ParseSize(s string) (uint64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSize, err)
	}
	return n, nil
}
