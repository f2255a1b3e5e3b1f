package codec

import "fmt"

// ReadNumeric decodes an integer field stored with encoding e.
func ReadNumeric(e Encoding, src []byte, bitOffset, bitLen uint) Numeric {
	switch e {
	case EncodingBits:
		return ReadBits(src, bitOffset, bitLen)
	case EncodingLE:
		return ReadLE(src, bitOffset, bitLen)
	case EncodingBCD:
		return ReadBCD(src, bitOffset, bitLen)
	case EncodingRevBCD:
		return ReadRevBCD(src, bitOffset, bitLen)
	case EncodingTone:
		return ReadTone(src, bitOffset)
	}
	panic(fmt.Sprintf("codec: ReadNumeric: %s is not an integer encoding", e))
}

// WriteNumeric encodes an integer field stored with encoding e.
func WriteNumeric(e Encoding, dst []byte, bitOffset uint, v Numeric, bitLen uint) {
	switch e {
	case EncodingBits:
		WriteBits(dst, bitOffset, v, bitLen)
	case EncodingLE:
		WriteLE(dst, bitOffset, v, bitLen)
	case EncodingBCD:
		WriteBCD(dst, bitOffset, v, bitLen)
	case EncodingRevBCD:
		WriteRevBCD(dst, bitOffset, v, bitLen)
	case EncodingTone:
		WriteTone(dst, bitOffset, v)
	default:
		panic(fmt.Sprintf("codec: WriteNumeric: %s is not an integer encoding", e))
	}
}

// ReadText decodes a text field stored with encoding e.
func ReadText(e Encoding, src []byte, bitOffset, bitLen uint) Text {
	switch e {
	case EncodingUTF16:
		return ReadUTF16(src, bitOffset, bitLen)
	case EncodingASCII:
		return ReadASCII(src, bitOffset, bitLen)
	}
	panic(fmt.Sprintf("codec: ReadText: %s is not a text encoding", e))
}

// WriteText encodes a text field stored with encoding e.
func WriteText(e Encoding, dst []byte, bitOffset uint, t Text, bitLen uint) {
	switch e {
	case EncodingUTF16:
		WriteUTF16(dst, bitOffset, t, bitLen)
	case EncodingASCII:
		WriteASCII(dst, bitOffset, t, bitLen)
	default:
		panic(fmt.Sprintf("codec: WriteText: %s is not a text encoding", e))
	}
}

// TextUnits returns how many code units a text field of bitLen bits holds.
func TextUnits(e Encoding, bitLen uint) int {
	if e == EncodingUTF16 {
		return int(bitLen / 16)
	}
	return int(bitLen / 8)
}

// MaxValue returns the largest value an integer field of bitLen bits can
// hold with encoding e.
func MaxValue(e Encoding, bitLen uint) Numeric {
	switch e {
	case EncodingBCD, EncodingRevBCD:
		v := Numeric(0)
		for i := uint(0); i < bitLen/4; i++ {
			v = v*10 + 9
		}
		return v
	case EncodingTone:
		return ToneDCSInverted | MaxToneValue
	}
	if bitLen >= MaxBits {
		return 0xFFFFFFFF
	}
	return Numeric(1)<<bitLen - 1
}

// Octets returns the bytes a field of bitLen bits at bitOffset touches.
func Octets(buf []byte, bitOffset, bitLen uint) []byte {
	return buf[bitOffset>>3 : (bitOffset+bitLen+7)>>3]
}
