package codec

// InvalidBCD is returned when a BCD field holds a nibble above 9. It is
// indistinguishable from a decoded zero.
const InvalidBCD Numeric = 0

// Tone kinds occupy bits 16-17 of a decoded tone value.
const (
	ToneCTCSS       Numeric = 0x00000
	ToneDCSNormal   Numeric = 0x20000
	ToneDCSInverted Numeric = 0x30000

	ToneKindMask  Numeric = 0x30000
	ToneValueMask Numeric = 0x0FFFF

	// MaxToneValue is the largest number the 14 BCD bits of a tone can hold.
	MaxToneValue Numeric = 3999
)

const toneTagBits = 0xC0

// bcdPair decodes one byte into its two-digit value. Nibbles above 9 are
// clamped to 9 and flagged.
func bcdPair(b byte) (Numeric, bool) {
	units := Numeric(b & 0x0F)
	tens := Numeric(b >> 4)
	valid := true
	if units > 9 {
		units = 9
		valid = false
	}
	if tens > 9 {
		tens = 9
		valid = false
	}
	return tens*10 + units, valid
}

func digitPair(v Numeric) (byte, Numeric) {
	units := v % 10
	v /= 10
	tens := v % 10
	v /= 10
	return byte(tens<<4 | units), v
}

// ReadBCD decodes a little-endian BCD field: the last byte holds the most
// significant digit pair. Every byte is consumed before InvalidBCD is
// reported.
func ReadBCD(src []byte, bitOffset, bitLen uint) Numeric {
	off, n := mustOctets("ReadBCD", bitOffset, bitLen)
	var v Numeric
	valid := true
	for i := n - 1; i >= 0; i-- {
		pair, ok := bcdPair(src[off+i])
		valid = valid && ok
		v = v*100 + pair
	}
	if !valid {
		return InvalidBCD
	}
	return v
}

// WriteBCD encodes v as little-endian BCD. InvalidBCD is written as 0xFF
// bytes. Digits that do not fit the field are dropped.
func WriteBCD(dst []byte, bitOffset uint, v Numeric, bitLen uint) {
	off, n := mustOctets("WriteBCD", bitOffset, bitLen)
	if v == InvalidBCD {
		fill(dst[off:off+n], 0xFF)
		return
	}
	for i := 0; i < n; i++ {
		dst[off+i], v = digitPair(v)
	}
}

// ReadRevBCD decodes a big-endian BCD field: the first byte holds the most
// significant digit pair.
func ReadRevBCD(src []byte, bitOffset, bitLen uint) Numeric {
	off, n := mustOctets("ReadRevBCD", bitOffset, bitLen)
	var v Numeric
	valid := true
	for i := 0; i < n; i++ {
		pair, ok := bcdPair(src[off+i])
		valid = valid && ok
		v = v*100 + pair
	}
	if !valid {
		return InvalidBCD
	}
	return v
}

// WriteRevBCD encodes v as big-endian BCD.
func WriteRevBCD(dst []byte, bitOffset uint, v Numeric, bitLen uint) {
	off, n := mustOctets("WriteRevBCD", bitOffset, bitLen)
	if v == InvalidBCD {
		fill(dst[off:off+n], 0xFF)
		return
	}
	for i := 0; i < n; i++ {
		dst[off+n-1-i], v = digitPair(v)
	}
}

// ReadTone decodes a 2-byte tone field. The two top bits of the second byte
// are the tone kind (00 CTCSS, 10 DCS normal, 11 DCS inverted); the other 14
// bits are little-endian BCD. The result is kind<<16 | number, or InvalidBCD.
//
// For example D023I is stored as x23 xC0 and decodes to ToneDCSInverted|23.
func ReadTone(src []byte, bitOffset uint) Numeric {
	off, _ := mustOctets("ReadTone", bitOffset, 16)
	raw := [2]byte{src[off], src[off+1]}
	kind := Numeric(raw[1]&toneTagBits) << 10
	raw[1] &^= toneTagBits

	v := ReadBCD(raw[:], 0, 16)
	if v == InvalidBCD {
		return InvalidBCD
	}
	return kind | v
}

// WriteTone encodes a value produced by ReadTone.
func WriteTone(dst []byte, bitOffset uint, v Numeric) {
	off, _ := mustOctets("WriteTone", bitOffset, 16)
	kind := byte((v & ToneKindMask) >> 10)
	WriteBCD(dst, bitOffset, v&ToneValueMask, 16)
	dst[off+1] |= kind
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
