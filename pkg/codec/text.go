package codec

import (
	"fmt"
	"unicode/utf16"
)

// Text is a fixed-length run of 16-bit code units. It is not null terminated
// in storage; a zero first unit is the empty string.
type Text []uint16

// NewText encodes s as UTF-16 into a Text of exactly width units, padding
// with zeros. Units beyond width are dropped.
func NewText(s string, width int) Text {
	t := make(Text, width)
	copy(t, utf16.Encode([]rune(s)))
	return t
}

// TextFromBytes maps each byte to one code unit, as the tabular layer does.
func TextFromBytes(b []byte, width int) Text {
	t := make(Text, width)
	for i := 0; i < len(b) && i < width; i++ {
		t[i] = uint16(b[i])
	}
	return t
}

// IsEmpty reports whether t is the empty string.
func (t Text) IsEmpty() bool {
	return len(t) == 0 || t[0] == 0
}

// Len returns the number of units before the first zero unit.
func (t Text) Len() int {
	for i, u := range t {
		if u == 0 {
			return i
		}
	}
	return len(t)
}

// String decodes the units before the first zero unit.
func (t Text) String() string {
	return string(utf16.Decode(t[:t.Len()]))
}

func (t Text) unit(i int) uint16 {
	if i < len(t) {
		return t[i]
	}
	return 0
}

// ReadUTF16 reads bitLen/16 little-endian code units.
func ReadUTF16(src []byte, bitOffset, bitLen uint) Text {
	if bitOffset&7 != 0 || bitLen&15 != 0 {
		panic(fmt.Sprintf("codec: ReadUTF16: invalid offset %d or width %d", bitOffset, bitLen))
	}
	t := make(Text, bitLen>>4)
	for i := range t {
		t[i] = uint16(ReadLE(src, bitOffset+16*uint(i), 16))
	}
	return t
}

// WriteUTF16 writes bitLen/16 code units. A shorter t is padded with zeros.
func WriteUTF16(dst []byte, bitOffset uint, t Text, bitLen uint) {
	if bitOffset&7 != 0 || bitLen&15 != 0 {
		panic(fmt.Sprintf("codec: WriteUTF16: invalid offset %d or width %d", bitOffset, bitLen))
	}
	n := int(bitLen >> 4)
	for i := 0; i < n; i++ {
		WriteLE(dst, bitOffset+16*uint(i), Numeric(t.unit(i)), 16)
	}
}

// ReadASCII reads a byte-per-unit field. A field made only of 0xFF bytes is
// the empty string and decodes to all zero units.
func ReadASCII(src []byte, bitOffset, bitLen uint) Text {
	if bitOffset&7 != 0 || bitLen&7 != 0 {
		panic(fmt.Sprintf("codec: ReadASCII: invalid offset %d or width %d", bitOffset, bitLen))
	}
	field := src[bitOffset>>3 : (bitOffset+bitLen)>>3]
	t := make(Text, len(field))

	empty := true
	for _, b := range field {
		if b != 0xFF {
			empty = false
			break
		}
	}
	if empty {
		return t
	}
	for i, b := range field {
		t[i] = uint16(b)
	}
	return t
}

// WriteASCII writes t one byte per unit, folding A-Z to lower case. The
// empty string is written as 0xFF bytes.
func WriteASCII(dst []byte, bitOffset uint, t Text, bitLen uint) {
	if bitOffset&7 != 0 || bitLen&7 != 0 {
		panic(fmt.Sprintf("codec: WriteASCII: invalid offset %d or width %d", bitOffset, bitLen))
	}
	field := dst[bitOffset>>3 : (bitOffset+bitLen)>>3]
	if t.IsEmpty() {
		fill(field, 0xFF)
		return
	}
	for i := range field {
		c := byte(t.unit(i))
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		field[i] = c
	}
}
