package codeplug

import (
	"fmt"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/field"
	"github.com/ssargent/rdtcsv/pkg/lookup"
)

// Value holds one field of a record. Which member is used depends on the
// field type.
type Value struct {
	Num  codec.Numeric
	Text codec.Text
	Ref  field.Reference
}

// Record is one row. Values are in field order.
type Record struct {
	Values []Value
}

// Collection holds the rows of one record type and, once registered, the
// lookup table of their keys.
type Collection struct {
	Type    *RecordType
	Records []*Record

	table *lookup.Table
}

// Name returns the record type name.
func (c *Collection) Name() string {
	return c.Type.Name
}

// Len returns the number of rows.
func (c *Collection) Len() int {
	return len(c.Records)
}

// KeyKind tells how rows are identified.
func (c *Collection) KeyKind() field.KeyKind {
	return c.Type.KeyKind()
}

// KeyText returns the name of a 1-based row.
func (c *Collection) KeyText(row int) codec.Text {
	return c.Records[row-1].Values[c.Type.Key].Text
}

// KeyNumber returns the numeric key of a 1-based row.
func (c *Collection) KeyNumber(row int) codec.Numeric {
	return c.Records[row-1].Values[c.Type.Key].Num
}

// NewRecord returns a row with every value empty.
func (c *Collection) NewRecord() *Record {
	r := &Record{Values: make([]Value, len(c.Type.Fields))}
	for i, f := range c.Type.Fields {
		if f.Type == TypeText {
			r.Values[i].Text = make(codec.Text, f.Units())
		}
	}
	return r
}

// Codeplug is the decoded content of an image.
type Codeplug struct {
	Layout      *Layout
	Collections []*Collection
}

// Collection returns the rows of type t.
func (cp *Codeplug) Collection(t *RecordType) *Collection {
	for _, c := range cp.Collections {
		if c.Type == t {
			return c
		}
	}
	panic(fmt.Sprintf("codeplug: record type %s is not part of layout %s", t.Name, cp.Layout.Name))
}

func (t *RecordType) slot(data []byte, i int) []byte {
	off := t.Offset + i*t.Stride
	return data[off : off+t.Stride]
}

// present reports whether a slot holds a row: its key field (or first field)
// is neither all fill bytes nor empty text.
func (t *RecordType) present(slot []byte) bool {
	f := t.KeyField()
	if f == nil {
		f = t.Fields[0]
	}
	allFill := true
	for _, b := range codec.Octets(slot, f.Offset, f.Bits) {
		if b != t.Fill {
			allFill = false
			break
		}
	}
	if allFill {
		return false
	}
	if f.Type == TypeText {
		return !codec.ReadText(f.Encoding, slot, f.Offset, f.Bits).IsEmpty()
	}
	return true
}

// Decode reads every record of the layout from data.
func (l *Layout) Decode(data []byte) (*Codeplug, error) {
	if len(data) != l.Size {
		return nil, fmt.Errorf("decode %d bytes with a %d byte layout: %w", len(data), l.Size, ErrImageSize)
	}

	cp := &Codeplug{Layout: l}
	for _, t := range l.Types {
		c := &Collection{Type: t}
		for i := 0; i < t.Count; i++ {
			slot := t.slot(data, i)
			if !t.present(slot) {
				break
			}
			c.Records = append(c.Records, decodeRecord(t, slot))
		}
		cp.Collections = append(cp.Collections, c)
	}
	return cp, nil
}

func decodeRecord(t *RecordType, slot []byte) *Record {
	r := &Record{Values: make([]Value, len(t.Fields))}
	for i, f := range t.Fields {
		v := &r.Values[i]
		switch f.Type {
		case TypeText:
			v.Text = codec.ReadText(f.Encoding, slot, f.Offset, f.Bits)
		case TypeReference:
			v.Ref.Row = codec.ReadNumeric(f.Encoding, slot, f.Offset, f.Bits)
		default:
			v.Num = codec.ReadNumeric(f.Encoding, slot, f.Offset, f.Bits)
		}
	}
	return r
}

// Encode writes every collection into data. Bytes of a slot not covered by
// a field keep their value; slots past the last row are filled.
func (cp *Codeplug) Encode(data []byte) error {
	if len(data) != cp.Layout.Size {
		return fmt.Errorf("encode into %d bytes with a %d byte layout: %w", len(data), cp.Layout.Size, ErrImageSize)
	}
	for _, c := range cp.Collections {
		t := c.Type
		if len(c.Records) > t.Count {
			return fmt.Errorf("%s: %d records, at most %d: %w", t.Name, len(c.Records), t.Count, ErrTooManyRows)
		}
		for i, r := range c.Records {
			encodeRecord(t, t.slot(data, i), r)
		}
		for i := len(c.Records); i < t.Count; i++ {
			slot := t.slot(data, i)
			for j := range slot {
				slot[j] = t.Fill
			}
		}
	}
	return nil
}

func encodeRecord(t *RecordType, slot []byte, r *Record) {
	for i, f := range t.Fields {
		v := &r.Values[i]
		switch f.Type {
		case TypeText:
			codec.WriteText(f.Encoding, slot, f.Offset, v.Text, f.Bits)
		case TypeReference:
			codec.WriteNumeric(f.Encoding, slot, f.Offset, v.Ref.Row, f.Bits)
		default:
			codec.WriteNumeric(f.Encoding, slot, f.Offset, v.Num, f.Bits)
		}
	}
}
