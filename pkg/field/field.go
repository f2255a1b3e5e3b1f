// Package field holds the static description of record fields and the
// Reference value that points from one record to another.
package field

import (
	"strconv"
	"strings"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
)

// Kind is the value kind of a field.
type Kind int

const (
	Integer Kind = iota
	Text
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Text:
		return "text"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Enumerator is one symbolic value of an integer field.
type Enumerator struct {
	Name     string
	NameHash uint32
	Value    codec.Numeric
}

// NewEnumerator hashes name the way tokens are hashed.
func NewEnumerator(name string, value codec.Numeric) Enumerator {
	return Enumerator{Name: name, NameHash: crc.StringLower(name), Value: value}
}

// Descriptor is the immutable metadata of one field, shared by every record
// of a type.
type Descriptor struct {
	Name        string
	NameHash    uint32
	Kind        Kind
	Enumerators []Enumerator
}

// NewDescriptor builds a descriptor and hashes its name.
func NewDescriptor(name string, kind Kind, enums ...Enumerator) *Descriptor {
	return &Descriptor{
		Name:        name,
		NameHash:    crc.StringLower(name),
		Kind:        kind,
		Enumerators: enums,
	}
}

// ByValue returns the enumerator whose value is v.
func (d *Descriptor) ByValue(v codec.Numeric) (Enumerator, bool) {
	for _, e := range d.Enumerators {
		if e.Value == v {
			return e, true
		}
	}
	return Enumerator{}, false
}

// ByHash returns the enumerator whose lower-cased name hashes to h.
func (d *Descriptor) ByHash(h uint32) (Enumerator, bool) {
	for _, e := range d.Enumerators {
		if e.NameHash == h {
			return e, true
		}
	}
	return Enumerator{}, false
}

// Examples returns up to max enumerator names and whether more exist.
func (d *Descriptor) Examples(max int) ([]string, bool) {
	n := len(d.Enumerators)
	if n > max {
		n = max
	}
	names := make([]string, n)
	for i := range names {
		names[i] = d.Enumerators[i].Name
	}
	return names, len(d.Enumerators) > max
}

// MaxExamples is how many enumerator names error messages list.
const MaxExamples = 5

// ValidValues renders up to MaxExamples enumerator names for error messages,
// e.g. "'Low', 'Mid' and 'High'".
func (d *Descriptor) ValidValues() string {
	names, more := d.Examples(MaxExamples)
	var b strings.Builder
	for i, n := range names {
		switch {
		case i == 0:
		case i == len(names)-1 && !more:
			b.WriteString(" and ")
		default:
			b.WriteString(", ")
		}
		b.WriteString("'" + n + "'")
	}
	if more {
		b.WriteString(", etc... (see docs)")
	}
	return b.String()
}
