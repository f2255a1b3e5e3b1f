// Package codec converts between raw codeplug bytes and typed field values.
//
// A codeplug is a fixed-layout binary image. Every field inside it is
// addressed by a bit offset from the start of the buffer and a width in bits.
// This package implements the field encodings found in those images:
//
//   - Raw bitfields (ReadBits/WriteBits): up to 8 bits, no alignment needed,
//     most significant bit first within each byte.
//   - Little-endian integers (ReadLE/WriteLE): whole octets, up to 32 bits.
//   - BCD (ReadBCD/WriteBCD): two decimal digits per byte, little-endian byte
//     order. Example: bytes x67 x45 x23 x41 decode to 41234567.
//   - Reversed BCD (ReadRevBCD/WriteRevBCD): same digits, big-endian byte
//     order. Example: bytes x12 x34 x56 x78 decode to 12345678.
//   - Tones (ReadTone/WriteTone): 2-byte BCD whose top two bits carry the
//     tone kind (CTCSS, DCS normal, DCS inverted).
//   - UTF-16 text (ReadUTF16/WriteUTF16): little-endian 16-bit code units.
//   - ASCII text (ReadASCII/WriteASCII): one byte per code unit, with an
//     all-0xFF field standing for the empty string.
//
// # Invalid BCD
//
// A BCD field containing a nibble above 9 decodes to InvalidBCD. InvalidBCD
// is the value 0, so a field whose domain includes 0 cannot tell a decoded
// zero from a decode failure. Encoding InvalidBCD fills the field with 0xFF.
//
// # Contract violations
//
// Offsets and widths come from schemas, not from user data. A misaligned
// offset or an oversized width is a programming error and panics. Callers
// that accept schemas from the outside (see package codeplug) validate them
// with CheckField before using them.
//
// # Usage
//
//	buf := make([]byte, 8)
//	codec.WriteBCD(buf, 16, 12345678, 32)
//	v := codec.ReadBCD(buf, 16, 32) // 12345678
//
// All functions operate in place on caller-owned buffers and never allocate,
// except the text readers which return a new Text.
package codec
