// Package crc computes the CRC-32 digests used as name identities.
//
// Names are compared by the IEEE (reflected) CRC-32 of their lower-cased
// bytes, so "Alice" and "ALICE" are the same name. Two different names with
// the same digest are treated as the same name; collisions are not detected.
package crc

import (
	"hash/crc32"

	"github.com/ssargent/rdtcsv/pkg/codec"
)

// AddByte folds one byte into a running CRC. Starting from 0, a sequence of
// AddByte calls yields the standard IEEE checksum of those bytes.
func AddByte(base uint32, b byte) uint32 {
	return crc32.Update(base, crc32.IEEETable, []byte{b})
}

// AddString folds s into base up to its first NUL byte, preserving case.
func AddString(base uint32, s string) uint32 {
	for i := 0; i < len(s) && s[i] != 0; i++ {
		base = AddByte(base, s[i])
	}
	return base
}

// AddStringLower folds s into base up to its first NUL byte, lower-casing
// ASCII letters.
func AddStringLower(base uint32, s string) uint32 {
	for i := 0; i < len(s) && s[i] != 0; i++ {
		base = AddByte(base, lower(s[i]))
	}
	return base
}

// AddTextLower folds the units of t before its first zero unit into base,
// one byte per unit. Units above 0xFF are folded as '?', which is how they
// are written to CSV.
func AddTextLower(base uint32, t codec.Text) uint32 {
	for _, u := range t {
		if u == 0 {
			break
		}
		b := byte('?')
		if u <= 0xFF {
			b = lower(byte(u))
		}
		base = AddByte(base, b)
	}
	return base
}

// String returns the case-preserving checksum of s.
func String(s string) uint32 {
	return AddString(0, s)
}

// StringLower returns the case-insensitive name key of s.
func StringLower(s string) uint32 {
	return AddStringLower(0, s)
}

// TextLower returns the case-insensitive name key of t.
func TextLower(t codec.Text) uint32 {
	return AddTextLower(0, t)
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
