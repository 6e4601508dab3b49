package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PartNumberWidth is the zero-padded width of the numeric portion of a
// part number. Identifiers above 999999 simply grow past the padding.
const PartNumberWidth = 6

// EntryID identifies a registry entry. The caller states which form it
// holds: the registry's internal numeric id, or the prefixed part number
// shown to users (e.g. "SBC000123").
type EntryID struct {
	display string
	number  int64
	numeric bool
}

// NumberID returns an EntryID holding a numeric registry id.
func NumberID(n int64) EntryID {
	return EntryID{number: n, numeric: true}
}

// PartID returns an EntryID holding a part-number string. The string may
// also be a bare run of digits; Number treats it as already numeric.
func PartID(s string) EntryID {
	return EntryID{display: s}
}

// Number returns the decimal string form of the numeric id, stripping a
// matching prefix from a part number first. Malformed part numbers return
// an error wrapping ErrInvalidID; numeric ids never fail.
func (id EntryID) Number(prefix string) (string, error) {
	if id.numeric {
		return strconv.FormatInt(id.number, 10), nil
	}

	digits := strings.TrimPrefix(id.display, prefix)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id.display)
	}
	return strconv.FormatInt(n, 10), nil
}

// PartNumber returns the prefixed display form of the identifier.
func (id EntryID) PartNumber(prefix string) (string, error) {
	num, err := id.Number(prefix)
	if err != nil {
		return "", err
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, num)
	}
	return FormatPartNumber(n, prefix), nil
}

// FormatPartNumber maps a numeric registry id to its part number,
// i.e. from 123 to SBC000123.
func FormatPartNumber(n int64, prefix string) string {
	return fmt.Sprintf("%s%0*d", prefix, PartNumberWidth, n)
}
