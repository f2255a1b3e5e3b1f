package codeplug

import (
	"errors"
	"fmt"
	"io"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/resolve"
	"github.com/ssargent/rdtcsv/pkg/tabular"
)

// Table renders a bound collection as CSV lines, header first. Integer
// values missing from their field's enumerators are written in decimal and
// reported on e.
func (c *Collection) Table(e *resolve.Engine) [][]string {
	t := c.Type
	lines := make([][]string, 0, len(c.Records)+1)

	header := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		header[i] = f.Name
	}
	lines = append(lines, header)

	for row, r := range c.Records {
		line := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			v := &r.Values[i]
			switch {
			case f.Type == TypeText:
				line[i] = tabular.FormatText(v.Text)
			case f.Type == TypeReference:
				line[i] = tabular.FormatReference(f.Descriptor, &v.Ref, f.Ref.KeyKind())
			case f.Encoding == codec.EncodingTone:
				line[i] = tabular.FormatTone(f.Descriptor, v.Num)
			default:
				s, err := tabular.FormatNumeric(f.Descriptor, v.Num)
				if errors.Is(err, tabular.ErrInvalidEnum) {
					e.Reportf(location(t, row, f), "%s", err)
				}
				line[i] = s
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// WriteTable writes lines to w.
func WriteTable(w io.Writer, sep byte, lines [][]string) error {
	tw := tabular.NewWriter(w, sep)
	for _, line := range lines {
		tw.Record(line)
	}
	return tw.Flush()
}

// ReadCSV replaces the rows of c with the content of a CSV file. Columns
// may come in any order; fields without a column are left empty. Format
// errors abort the read; references are only parsed, not resolved.
func (c *Collection) ReadCSV(r io.Reader, sep byte, name string) error {
	t := c.Type
	tr := tabular.NewReader(r, sep)
	columns, err := tabular.ReadColumns(t.Descriptors(), tr)
	if err != nil {
		return fmt.Errorf("file %s: %w", name, err)
	}

	var records []*Record
	for {
		line := tr.Line()
		tokens, err := tr.ReadRecord()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("file %s: %w", name, err)
		}
		if len(tokens) != len(columns) {
			return fmt.Errorf("file %s, line %d: %d fields, header has %d: %w",
				name, line, len(tokens), len(columns), tabular.ErrInvalidFormat)
		}
		if len(records) == t.Count {
			return fmt.Errorf("file %s, line %d: %s holds at most %d: %w", name, line, t.Name, t.Count, ErrTooManyRows)
		}

		rec := c.NewRecord()
		for col, tok := range tokens {
			f := t.Fields[columns[col]]
			if err := parseValue(f, tok, &rec.Values[columns[col]]); err != nil {
				return fmt.Errorf("file %s, line %d, field '%s': %w", name, line, f.Name, err)
			}
		}
		records = append(records, rec)
	}

	c.Records = records
	c.table = nil
	return nil
}

func parseValue(f *Field, tok string, v *Value) error {
	var err error
	switch {
	case f.Type == TypeText:
		v.Text, err = tabular.ParseText(tok, f.Units())
		return err
	case f.Type == TypeReference:
		v.Ref = tabular.ParseReference(tok)
		return nil
	case f.Encoding == codec.EncodingTone:
		v.Num, err = tabular.ParseTone(f.Descriptor, tok)
	default:
		v.Num, err = tabular.ParseNumeric(f.Descriptor, tok)
	}
	if err != nil {
		return err
	}
	if v.Num > codec.MaxValue(f.Encoding, f.Bits) {
		return fmt.Errorf("%d: %w", v.Num, ErrInvalidValue)
	}
	return nil
}
