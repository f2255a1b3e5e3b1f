// Package resolve converts references between their binary form (a row
// number into another collection) and their text form (a name, a numeric
// key or an enumerator).
//
// Bind runs in the export direction, Resolve in the update direction. Both
// report problems through a Reporter and keep going, so a single pass lists
// every bad reference in the input. The Engine counts what it reported; a
// nonzero count means the output must not be written.
//
// An Engine is not safe for concurrent use. Lookup tables passed to Resolve
// must be fully built before the first call.
package resolve

import (
	"fmt"
	"strconv"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
	"github.com/ssargent/rdtcsv/pkg/field"
	"github.com/ssargent/rdtcsv/pkg/lookup"
)

// Location identifies the field a call is working on.
type Location struct {
	RecordType  string
	RecordIndex int // 0-based, or NoIndex
	Field       *field.Descriptor
}

// Target is the referenced collection as Bind sees it. Rows are 1-based.
type Target interface {
	Name() string
	Len() int
	KeyKind() field.KeyKind
	KeyText(row int) codec.Text
	KeyNumber(row int) codec.Numeric
}

// Engine binds and resolves references and counts violations.
type Engine struct {
	reporter   Reporter
	violations int
}

// New creates an engine reporting to r.
func New(r Reporter) *Engine {
	if r == nil {
		r = ReporterFunc(func(Violation) {})
	}
	return &Engine{reporter: r}
}

// Violations returns how many violations have been reported so far.
func (e *Engine) Violations() int {
	return e.violations
}

// Reportf reports a violation at loc and counts it.
func (e *Engine) Reportf(loc Location, format string, args ...any) {
	name := ""
	if loc.Field != nil {
		name = loc.Field.Name
	}
	e.violations++
	e.reporter.Report(Violation{
		RecordType:  loc.RecordType,
		RecordIndex: loc.RecordIndex,
		Field:       name,
		Message:     fmt.Sprintf(format, args...),
	})
}

// Bind turns the row number in ref into its text form. A row matching one of
// the field's enumerators keeps that enumerator's hash as ID, so a later
// Resolve finds it again. Row 0 (no reference) leaves ref empty.
// Otherwise the row must exist in target; its key becomes ref.ID and
// ref.Sample, and for name-keyed targets ref.Name aliases the target's name.
// A numeric key is also kept as ref.Token, so key 0 is not taken for an
// absent reference.
func (e *Engine) Bind(loc Location, ref *field.Reference, target Target) bool {
	ref.Name = nil
	ref.ID = 0
	ref.Sample = ""
	ref.Token = ""

	if enum, ok := loc.Field.ByValue(ref.Row); ok {
		ref.ID = enum.NameHash
		ref.Sample = field.Sample(enum.Name)
		return true
	}
	if ref.Row == field.RowAbsent {
		return true
	}
	if ref.Row > uint32(target.Len()) {
		e.Reportf(loc, "row %d not found in table %s", ref.Row, target.Name())
		return false
	}

	row := int(ref.Row)
	switch target.KeyKind() {
	case field.KeyName:
		name := target.KeyText(row)
		ref.Name = name
		ref.ID = crc.TextLower(name)
		ref.Sample = field.SampleText(name)
	case field.KeyNumber:
		key := target.KeyNumber(row)
		ref.ID = key
		ref.Token = strconv.FormatUint(uint64(key), 10)
		ref.Sample = field.Sample(ref.Token)
	}
	return true
}

// Resolve turns the text form of ref into a row number. Enumerators are
// tried first, so symbolic constants always win over rows with the same
// name. Name-keyed references are then looked up in tab by ref.ID; numeric
// ones parse ref.Token (or take ref.ID when there is no token) and look the
// number up.
func (e *Engine) Resolve(loc Location, ref *field.Reference, tab *lookup.Table, tableName string, keys field.KeyKind) bool {
	if ref.Row == field.RowSkip {
		return true
	}
	ref.Row = field.RowAbsent
	ref.Name = nil
	if ref.ID == 0 && ref.Token == "" {
		return true
	}

	if enum, ok := loc.Field.ByHash(ref.ID); ok {
		ref.Row = enum.Value
		return true
	}

	key := ref.ID
	if keys == field.KeyNumber && ref.Token != "" {
		v, err := strconv.ParseUint(ref.Token, 10, 32)
		if err != nil {
			e.reportInvalidValue(loc, ref)
			return false
		}
		key = uint32(v)
		ref.ID = key
	}

	row, name := tab.Find(key)
	if row == 0 {
		ellipsis := ""
		if ref.Truncated() {
			ellipsis = "..."
		}
		e.Reportf(loc, "name '%s%s' not found in table %s", ref.Sample, ellipsis, tableName)
		return false
	}
	ref.Row = row
	ref.Name = name
	return true
}

func (e *Engine) reportInvalidValue(loc Location, ref *field.Reference) {
	if len(loc.Field.Enumerators) == 0 {
		e.Reportf(loc, "invalid value '%s'", ref.Sample)
		return
	}
	e.Reportf(loc, "invalid value '%s'. Valid values are %s", ref.Sample, loc.Field.ValidValues())
}
