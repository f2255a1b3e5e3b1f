//go:build fuzz
// +build fuzz

package codec

import (
	"testing"
)

// FuzzBCD_RoundTrip checks that every value that fits a field survives encode/decode
func FuzzBCD_RoundTrip(f *testing.F) {
	f.Add(uint32(0), uint8(4))
	f.Add(uint32(12345678), uint8(4))
	f.Add(uint32(99), uint8(1))
	f.Add(uint32(770), uint8(2))

	f.Fuzz(func(t *testing.T, v uint32, octets uint8) {
		n := uint(octets%4) + 1
		limit := uint32(1)
		for i := uint(0); i < n; i++ {
			limit *= 100
		}
		v %= limit

		buf := make([]byte, 6)
		WriteBCD(buf, 8, v, n*8)
		if got := ReadBCD(buf, 8, n*8); got != v {
			t.Errorf("BCD mismatch: got %d, want %d (octets=%d)", got, v, n)
		}

		WriteRevBCD(buf, 8, v, n*8)
		if got := ReadRevBCD(buf, 8, n*8); got != v {
			t.Errorf("RevBCD mismatch: got %d, want %d (octets=%d)", got, v, n)
		}
	})
}

// FuzzDecode_NeverPanics feeds arbitrary buffers to every aligned decoder
func FuzzDecode_NeverPanics(f *testing.F) {
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{0x12, 0x34, 0x56, 0x78})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 4 {
			t.Skip("need a 32-bit field")
		}

		ReadLE(data, 0, 32)
		ReadBCD(data, 0, 32)
		ReadRevBCD(data, 0, 32)
		ReadTone(data, 0)
		ReadUTF16(data, 0, 32)
		ReadASCII(data, 0, 32)

		tone := ReadTone(data, 16)
		buf := make([]byte, 2)
		WriteTone(buf, 0, tone)
		if tone != InvalidBCD && ReadTone(buf, 0) != tone {
			t.Errorf("tone %#x did not round trip", tone)
		}
	})
}
