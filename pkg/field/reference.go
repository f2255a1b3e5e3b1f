package field

import (
	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
)

// SampleLen bounds the token text kept for error messages.
const SampleLen = 17

const (
	// RowAbsent marks an unset reference.
	RowAbsent uint32 = 0

	// RowSkip marks a reference that is intentionally absent and must not
	// be resolved.
	RowSkip uint32 = 0xFFFF
)

// KeyKind tells how the records a reference points at are identified.
type KeyKind int

const (
	KeyName KeyKind = iota
	KeyNumber
)

// Reference is a field value that points at a row of another collection.
//
// In binary form only Row is meaningful. Binding fills Name, ID and Sample
// from the target row; reading text fills Token, ID and Sample and resolving
// computes Row. Name aliases the target record's own text and is nil unless
// the reference was bound through a name-keyed collection.
type Reference struct {
	Row    uint32
	Name   codec.Text
	ID     uint32
	Sample string
	Token  string
}

// NewTokenReference prepares a reference read from text.
func NewTokenReference(token string) Reference {
	return Reference{
		ID:     crc.StringLower(token),
		Sample: Sample(token),
		Token:  token,
	}
}

// Sample truncates s to SampleLen bytes.
func Sample(s string) string {
	if len(s) > SampleLen {
		return s[:SampleLen]
	}
	return s
}

// SampleText renders the start of t for error messages.
func SampleText(t codec.Text) string {
	n := t.Len()
	if n > SampleLen {
		n = SampleLen
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(t[i])
	}
	return string(b)
}

// Truncated reports whether Sample is shorter than the token it came from.
func (r *Reference) Truncated() bool {
	return len(r.Sample) >= SampleLen
}
