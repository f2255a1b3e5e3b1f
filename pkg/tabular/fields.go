package tabular

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
	"github.com/ssargent/rdtcsv/pkg/field"
)

// ReadColumns reads the header line and maps every column to the index of
// its descriptor. Header names match case-insensitively.
func ReadColumns(descriptors []*field.Descriptor, r *Reader) ([]int, error) {
	names, err := r.ReadRecord()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyEOF
		}
		return nil, err
	}

	seen := make([]bool, len(descriptors))
	columns := make([]int, len(names))
	for i, name := range names {
		h := crc.StringLower(name)
		j := 0
		for ; j < len(descriptors); j++ {
			if descriptors[j].NameHash == h {
				break
			}
		}
		if j == len(descriptors) {
			return nil, fmt.Errorf("%w: unknown field '%s' at column %d", ErrInvalidHeader, name, i)
		}
		if seen[j] {
			return nil, fmt.Errorf("%w: field '%s' at column %d already defined", ErrInvalidHeader, name, i)
		}
		seen[j] = true
		columns[i] = j
	}
	return columns, nil
}

func invalidValue(d *field.Descriptor, token string) error {
	if len(d.Enumerators) == 0 {
		return fmt.Errorf("%w: invalid value '%s'", ErrInvalidFormat, token)
	}
	return fmt.Errorf("%w: invalid value '%s'. Valid values are %s", ErrInvalidFormat, token, d.ValidValues())
}

// ParseNumeric reads an integer field. A field with enumerators takes only
// their names, matched case-insensitively; any other field takes a decimal
// number, and the empty token is 0.
func ParseNumeric(d *field.Descriptor, token string) (codec.Numeric, error) {
	if len(d.Enumerators) > 0 {
		e, ok := d.ByHash(crc.StringLower(token))
		if !ok {
			return 0, invalidValue(d, token)
		}
		return e.Value, nil
	}
	if token == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, invalidValue(d, token)
	}
	return codec.Numeric(v), nil
}

// ParseText maps each byte of token to one code unit of a width-unit Text.
func ParseText(token string, width int) (codec.Text, error) {
	if len(token) > width {
		return nil, fmt.Errorf("%w: '%s' too long, at most %d characters", ErrInvalidFormat, field.Sample(token), width)
	}
	return codec.TextFromBytes([]byte(token), width), nil
}

// ParseReference prepares the text form of a reference for resolution.
func ParseReference(token string) field.Reference {
	return field.NewTokenReference(token)
}

// FormatNumeric renders v as its enumerator name or in decimal. A field with
// enumerators that has none for v is rendered in decimal and ErrInvalidEnum
// is returned alongside.
func FormatNumeric(d *field.Descriptor, v codec.Numeric) (string, error) {
	if e, ok := d.ByValue(v); ok {
		return e.Name, nil
	}
	s := strconv.FormatUint(uint64(v), 10)
	if len(d.Enumerators) > 0 {
		return s, fmt.Errorf("%w: invalid value %d. Valid values are %s", ErrInvalidEnum, v, d.ValidValues())
	}
	return s, nil
}

// FormatReference renders a bound reference: its enumerator, the name of
// the row it points at, or the numeric key. Absent references are empty.
func FormatReference(d *field.Descriptor, ref *field.Reference, keys field.KeyKind) string {
	if e, ok := d.ByValue(ref.Row); ok {
		return e.Name
	}
	if ref.Row == field.RowAbsent {
		return ""
	}
	if keys == field.KeyNumber {
		return strconv.FormatUint(uint64(ref.ID), 10)
	}
	return FormatText(ref.Name)
}

// FormatText renders t one byte per unit. Units outside 1..255 become '?'.
func FormatText(t codec.Text) string {
	n := t.Len()
	var b strings.Builder
	b.Grow(n)
	for _, u := range t[:n] {
		if u > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte(u))
	}
	return b.String()
}
