// Package codeplug maps the records of a radio codeplug image to and from
// CSV files.
//
// The layout of an image is not compiled in: a YAML schema names the record
// types, where their slots live and how every field is encoded. A schema is
// validated once by Compile; afterwards decoding and encoding can only hit
// offsets and widths the codec accepts.
//
// Rows of every record type are dense and 1-based. Decoding stops at the
// first empty slot and encoding fills every slot past the last row with the
// type's fill byte, so references (row numbers) stay valid as long as the
// rows they point at keep their order.
package codeplug

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
	"github.com/ssargent/rdtcsv/pkg/field"
	"github.com/ssargent/rdtcsv/pkg/lookup"
)

// Schema is the YAML description of a codeplug layout.
type Schema struct {
	Name    string       `yaml:"name"`
	Size    int          `yaml:"size"`
	Images  []ImageSpec  `yaml:"images"`
	Records []RecordSpec `yaml:"records"`
}

// ImageSpec is one file format the codeplug window can be found in.
type ImageSpec struct {
	Name   string `yaml:"name"`
	Size   int    `yaml:"size"`
	Offset int    `yaml:"offset"`
}

// RecordSpec describes a record type. Offset and Stride are in bytes.
type RecordSpec struct {
	Name   string      `yaml:"name"`
	Flag   string      `yaml:"flag"`
	Offset int         `yaml:"offset"`
	Stride int         `yaml:"stride"`
	Count  int         `yaml:"count"`
	Key    string      `yaml:"key,omitempty"`
	Fill   *int        `yaml:"fill,omitempty"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec describes one field. Offset and Bits are in bits from the start
// of the record slot.
type FieldSpec struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Encoding string     `yaml:"encoding"`
	Offset   uint       `yaml:"offset"`
	Bits     uint       `yaml:"bits"`
	Enum     []EnumSpec `yaml:"enum,omitempty"`
	Ref      string     `yaml:"ref,omitempty"`
}

// EnumSpec names one value of an integer or reference field.
type EnumSpec struct {
	Name  string `yaml:"name"`
	Value uint32 `yaml:"value"`
}

// ParseSchema decodes a YAML schema.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return &s, nil
}

// LoadSchema reads and compiles the schema at path.
func LoadSchema(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, err
	}
	return s.Compile()
}

// FieldType is the value kind of a schema field.
type FieldType int

const (
	TypeInteger FieldType = iota
	TypeText
	TypeReference
)

var fieldTypes = map[string]FieldType{
	"integer":   TypeInteger,
	"text":      TypeText,
	"reference": TypeReference,
}

// Field is a compiled field.
type Field struct {
	*field.Descriptor
	Type     FieldType
	Encoding codec.Encoding
	Offset   uint
	Bits     uint
	Ref      *RecordType
}

// Units returns the capacity of a text field in code units.
func (f *Field) Units() int {
	return codec.TextUnits(f.Encoding, f.Bits)
}

// RecordType is a compiled record type.
type RecordType struct {
	Name   string
	Flag   string
	Offset int
	Stride int
	Count  int
	Fill   byte
	Fields []*Field
	Key    int // index into Fields, -1 when rows have no key

	descriptors []*field.Descriptor
}

// KeyField returns the field rows are identified by, or nil.
func (t *RecordType) KeyField() *Field {
	if t.Key < 0 {
		return nil
	}
	return t.Fields[t.Key]
}

// KeyKind tells how rows of t are looked up.
func (t *RecordType) KeyKind() field.KeyKind {
	if k := t.KeyField(); k != nil && k.Type == TypeInteger {
		return field.KeyNumber
	}
	return field.KeyName
}

// Descriptors returns the descriptor of every field in column order.
func (t *RecordType) Descriptors() []*field.Descriptor {
	return t.descriptors
}

// Layout is a compiled schema.
type Layout struct {
	Name   string
	Size   int
	Images []ImageSpec
	Types  []*RecordType
}

// Type returns the record type called name.
func (l *Layout) Type(name string) (*RecordType, bool) {
	for _, t := range l.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TypeByFlag finds a record type by its flag, ignoring case.
func (l *Layout) TypeByFlag(flag string) (*RecordType, bool) {
	h := crc.StringLower(flag)
	for _, t := range l.Types {
		if crc.StringLower(t.Flag) == h {
			return t, true
		}
	}
	return nil, false
}

// Compile validates the schema and builds its Layout.
func (s *Schema) Compile() (*Layout, error) {
	if s.Size <= 0 {
		return nil, fmt.Errorf("schema %s: size must be positive", s.Name)
	}
	if len(s.Images) == 0 {
		return nil, fmt.Errorf("schema %s: no image formats", s.Name)
	}
	for _, img := range s.Images {
		if img.Offset < 0 || img.Offset+s.Size > img.Size {
			return nil, fmt.Errorf("schema %s: image %s of %d bytes cannot hold %d bytes at offset %d",
				s.Name, img.Name, img.Size, s.Size, img.Offset)
		}
	}

	l := &Layout{Name: s.Name, Size: s.Size, Images: s.Images}
	names := map[string]*RecordType{}
	flags := map[uint32]string{}
	for i := range s.Records {
		t, err := s.compileType(&s.Records[i])
		if err != nil {
			return nil, err
		}
		if _, dup := names[t.Name]; dup {
			return nil, fmt.Errorf("record type %s defined twice", t.Name)
		}
		h := crc.StringLower(t.Flag)
		if other, dup := flags[h]; dup {
			return nil, fmt.Errorf("record types %s and %s share flag %q", other, t.Name, t.Flag)
		}
		names[t.Name] = t
		flags[h] = t.Name
		l.Types = append(l.Types, t)
	}

	for i, t := range l.Types {
		for j, f := range t.Fields {
			ref := s.Records[i].Fields[j].Ref
			if f.Type != TypeReference {
				continue
			}
			target, ok := names[ref]
			if !ok {
				return nil, fmt.Errorf("%s.%s: unknown record type %q", t.Name, f.Name, ref)
			}
			if target.Key < 0 {
				return nil, fmt.Errorf("%s.%s: record type %s has no key", t.Name, f.Name, ref)
			}
			if codec.Numeric(target.Count) > codec.MaxValue(f.Encoding, f.Bits) {
				return nil, fmt.Errorf("%s.%s: cannot address %d rows of %s", t.Name, f.Name, target.Count, ref)
			}
			f.Ref = target
		}
	}
	return l, nil
}

func (s *Schema) compileType(rs *RecordSpec) (*RecordType, error) {
	if rs.Name == "" || rs.Flag == "" {
		return nil, fmt.Errorf("record types need a name and a flag")
	}
	if rs.Stride <= 0 || rs.Count <= 0 {
		return nil, fmt.Errorf("%s: stride and count must be positive", rs.Name)
	}
	if rs.Count > lookup.MaxCapacity || uint32(rs.Count) >= field.RowSkip {
		return nil, fmt.Errorf("%s: count %d too large", rs.Name, rs.Count)
	}
	if rs.Offset < 0 || rs.Offset+rs.Stride*rs.Count > s.Size {
		return nil, fmt.Errorf("%s: %d records of %d bytes at offset %d exceed the %d byte image",
			rs.Name, rs.Count, rs.Stride, rs.Offset, s.Size)
	}
	if len(rs.Fields) == 0 {
		return nil, fmt.Errorf("%s: no fields", rs.Name)
	}

	t := &RecordType{
		Name:   rs.Name,
		Flag:   rs.Flag,
		Offset: rs.Offset,
		Stride: rs.Stride,
		Count:  rs.Count,
		Fill:   0xFF,
		Key:    -1,
	}
	if rs.Fill != nil {
		if *rs.Fill < 0 || *rs.Fill > 0xFF {
			return nil, fmt.Errorf("%s: fill %d is not a byte", rs.Name, *rs.Fill)
		}
		t.Fill = byte(*rs.Fill)
	}

	seen := map[uint32]bool{}
	for i := range rs.Fields {
		f, err := compileField(rs, &rs.Fields[i])
		if err != nil {
			return nil, err
		}
		if seen[f.NameHash] {
			return nil, fmt.Errorf("%s: field %s defined twice", rs.Name, f.Name)
		}
		seen[f.NameHash] = true
		if f.Name == rs.Key {
			if f.Type == TypeReference {
				return nil, fmt.Errorf("%s: key field %s cannot be a reference", rs.Name, f.Name)
			}
			t.Key = i
		}
		t.Fields = append(t.Fields, f)
		t.descriptors = append(t.descriptors, f.Descriptor)
	}
	if rs.Key != "" && t.Key < 0 {
		return nil, fmt.Errorf("%s: key field %s not found", rs.Name, rs.Key)
	}
	return t, nil
}

func compileField(rs *RecordSpec, fs *FieldSpec) (*Field, error) {
	where := rs.Name + "." + fs.Name
	if fs.Name == "" {
		return nil, fmt.Errorf("%s: field without a name", rs.Name)
	}
	typ, ok := fieldTypes[fs.Type]
	if !ok {
		return nil, fmt.Errorf("%s: unknown type %q", where, fs.Type)
	}
	enc, err := codec.ParseEncoding(fs.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	if enc.IsText() != (typ == TypeText) {
		return nil, fmt.Errorf("%s: encoding %s cannot hold a %s field", where, enc, fs.Type)
	}
	if err := codec.CheckField(enc, fs.Offset, fs.Bits); err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	if fs.Offset+fs.Bits > uint(rs.Stride)*8 {
		return nil, fmt.Errorf("%s: bits %d..%d outside the %d byte record", where, fs.Offset, fs.Offset+fs.Bits, rs.Stride)
	}
	if typ == TypeReference && fs.Ref == "" {
		return nil, fmt.Errorf("%s: reference without a target", where)
	}
	if typ == TypeText && len(fs.Enum) > 0 {
		return nil, fmt.Errorf("%s: text fields cannot have enumerators", where)
	}

	kind := field.Integer
	if typ == TypeText {
		kind = field.Text
	}
	max := codec.MaxValue(enc, fs.Bits)
	enums := make([]field.Enumerator, 0, len(fs.Enum))
	for _, e := range fs.Enum {
		if e.Value > max {
			return nil, fmt.Errorf("%s: enumerator %s value %d does not fit", where, e.Name, e.Value)
		}
		enums = append(enums, field.NewEnumerator(e.Name, e.Value))
	}

	return &Field{
		Descriptor: field.NewDescriptor(fs.Name, kind, enums...),
		Type:       typ,
		Encoding:   enc,
		Offset:     fs.Offset,
		Bits:       fs.Bits,
	}, nil
}
