package codec

import "fmt"

// Numeric is the in-memory form of every integer field.
type Numeric = uint32

// MaxBits is the widest integer field the codec handles.
const MaxBits = 32

// Encoding identifies how a field is stored in the binary image.
type Encoding int

const (
	EncodingBits Encoding = iota
	EncodingLE
	EncodingBCD
	EncodingRevBCD
	EncodingTone
	EncodingUTF16
	EncodingASCII
)

var encodingNames = map[Encoding]string{
	EncodingBits:   "bits",
	EncodingLE:     "le",
	EncodingBCD:    "bcd",
	EncodingRevBCD: "revbcd",
	EncodingTone:   "tone",
	EncodingUTF16:  "utf16",
	EncodingASCII:  "ascii",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding maps a schema name such as "bcd" to its Encoding.
func ParseEncoding(name string) (Encoding, error) {
	for e, n := range encodingNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown encoding %q", name)
}

// IsText reports whether the encoding produces a Text value.
func (e Encoding) IsText() bool {
	return e == EncodingUTF16 || e == EncodingASCII
}

// CheckField validates an offset/width pair against the constraints of an
// encoding. It returns an error instead of panicking so schema loaders can
// report bad layouts.
func CheckField(e Encoding, bitOffset, bitLen uint) error {
	switch e {
	case EncodingBits:
		if bitLen == 0 || bitLen > 8 {
			return fmt.Errorf("%s field must be 1..8 bits wide, got %d", e, bitLen)
		}
		return nil
	case EncodingTone:
		if bitLen != 16 {
			return fmt.Errorf("%s field must be 16 bits wide, got %d", e, bitLen)
		}
	case EncodingUTF16:
		if bitLen == 0 || bitLen%16 != 0 {
			return fmt.Errorf("%s field width must be a multiple of 16 bits, got %d", e, bitLen)
		}
	case EncodingASCII:
		if bitLen == 0 || bitLen%8 != 0 {
			return fmt.Errorf("%s field width must be a multiple of 8 bits, got %d", e, bitLen)
		}
	case EncodingLE, EncodingBCD, EncodingRevBCD:
		if bitLen == 0 || bitLen%8 != 0 || bitLen > MaxBits {
			return fmt.Errorf("%s field width must be 8, 16, 24 or 32 bits, got %d", e, bitLen)
		}
	default:
		return fmt.Errorf("unknown encoding %d", int(e))
	}
	if bitOffset%8 != 0 {
		return fmt.Errorf("%s field offset %d is not octet aligned", e, bitOffset)
	}
	return nil
}

// mustOctets panics unless offset and width are whole octets and width fits
// a Numeric. It returns both converted to bytes.
func mustOctets(op string, bitOffset, bitLen uint) (int, int) {
	if bitOffset&7 != 0 {
		panic(fmt.Sprintf("codec: %s: offset %d is not octet aligned", op, bitOffset))
	}
	if bitLen&7 != 0 || bitLen > MaxBits {
		panic(fmt.Sprintf("codec: %s: invalid width %d", op, bitLen))
	}
	return int(bitOffset >> 3), int(bitLen >> 3)
}

func bitMask(bit uint) byte {
	return 0x80 >> (bit & 7)
}

// ReadBits copies bitLen (at most 8) bits starting at bitOffset into the low
// bits of the result. Bits are taken most significant first.
func ReadBits(src []byte, bitOffset, bitLen uint) Numeric {
	if bitLen > 8 {
		panic(fmt.Sprintf("codec: ReadBits: width %d exceeds 8", bitLen))
	}
	var v Numeric
	for i := uint(0); i < bitLen; i++ {
		bit := bitOffset + i
		if src[bit>>3]&bitMask(bit) != 0 {
			v |= 1 << (bitLen - i - 1)
		}
	}
	return v
}

// WriteBits stores the low bitLen (at most 8) bits of v at bitOffset. Bits
// outside the field are left untouched.
func WriteBits(dst []byte, bitOffset uint, v Numeric, bitLen uint) {
	if bitLen > 8 {
		panic(fmt.Sprintf("codec: WriteBits: width %d exceeds 8", bitLen))
	}
	for i := int(bitLen) - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			dst[bitOffset>>3] |= bitMask(bitOffset)
		} else {
			dst[bitOffset>>3] &^= bitMask(bitOffset)
		}
		bitOffset++
	}
}

// ReadLE reads a little-endian integer of bitLen bits.
func ReadLE(src []byte, bitOffset, bitLen uint) Numeric {
	off, n := mustOctets("ReadLE", bitOffset, bitLen)
	var v Numeric
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | Numeric(src[off+i])
	}
	return v
}

// WriteLE writes the low bitLen bits of v as a little-endian integer.
func WriteLE(dst []byte, bitOffset uint, v Numeric, bitLen uint) {
	off, n := mustOctets("WriteLE", bitOffset, bitLen)
	for i := 0; i < n; i++ {
		dst[off+i] = byte(v)
		v >>= 8
	}
}
