package codeplug

import (
	"errors"
	"fmt"

	"github.com/ssargent/rdtcsv/pkg/field"
	"github.com/ssargent/rdtcsv/pkg/lookup"
	"github.com/ssargent/rdtcsv/pkg/resolve"
)

func location(t *RecordType, row int, f *Field) resolve.Location {
	loc := resolve.Location{RecordType: t.Name, RecordIndex: row}
	if f != nil {
		loc.Field = f.Descriptor
	}
	return loc
}

// Register builds the lookup table of every keyed collection. A key used by
// two rows is reported as a violation against the later row. Running out of
// table space is an error.
func (cp *Codeplug) Register(e *resolve.Engine) error {
	for _, c := range cp.Collections {
		key := c.Type.KeyField()
		if key == nil {
			continue
		}

		tab, err := lookup.New(c.Type.Count)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Type.Name, err)
		}
		for i, r := range c.Records {
			row := uint32(i + 1)
			v := &r.Values[c.Type.Key]

			var first uint32
			var sample string
			if key.Type == TypeText {
				if v.Text.IsEmpty() {
					e.Reportf(location(c.Type, i, key), "name is empty")
					continue
				}
				first, err = tab.AddText(v.Text, row)
				sample = field.SampleText(v.Text)
			} else {
				first, err = tab.AddNumber(v.Num, row)
				sample = fmt.Sprint(v.Num)
			}
			if errors.Is(err, lookup.ErrOverflow) {
				return fmt.Errorf("%s: %d rows: %w", c.Type.Name, len(c.Records), err)
			}
			if err != nil {
				return err
			}
			if first != 0 {
				e.Reportf(location(c.Type, i, key), "name '%s' already used at line %d", sample, first)
			}
		}
		c.table = tab
	}
	return nil
}

// Bind turns the row number of every reference into the key of the row it
// points at.
func (cp *Codeplug) Bind(e *resolve.Engine) {
	cp.eachReference(func(loc resolve.Location, f *Field, ref *field.Reference) {
		e.Bind(loc, ref, cp.Collection(f.Ref))
	})
}

// Resolve turns the key of every reference back into a row number. Register
// must have run since the referenced collections last changed.
func (cp *Codeplug) Resolve(e *resolve.Engine) {
	cp.eachReference(func(loc resolve.Location, f *Field, ref *field.Reference) {
		target := cp.Collection(f.Ref)
		e.Resolve(loc, ref, target.table, target.Name(), target.KeyKind())
	})
}

func (cp *Codeplug) eachReference(fn func(resolve.Location, *Field, *field.Reference)) {
	for _, c := range cp.Collections {
		for i, r := range c.Records {
			for j, f := range c.Type.Fields {
				if f.Type == TypeReference {
					fn(location(c.Type, i, f), f, &r.Values[j].Ref)
				}
			}
		}
	}
}
