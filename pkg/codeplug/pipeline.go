package codeplug

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ssargent/rdtcsv/pkg/resolve"
)

// Request pairs a record type flag with a CSV file path.
type Request struct {
	Flag string
	Path string
}

// Pipeline runs the export and update conversions. Violations go to
// Reporter; when there are any, no file is written.
type Pipeline struct {
	Layout    *Layout
	Separator byte
	Reporter  resolve.Reporter
	Logger    *slog.Logger

	// BeforeSave, when set, receives the image content about to be
	// overwritten by Update. An error aborts the update.
	BeforeSave func(path string, old []byte) error
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

func (p *Pipeline) types(reqs []Request) ([]*RecordType, error) {
	types := make([]*RecordType, len(reqs))
	for i, req := range reqs {
		t, ok := p.Layout.TypeByFlag(req.Flag)
		if !ok {
			return nil, fmt.Errorf("%q: %w", req.Flag, ErrUnknownType)
		}
		types[i] = t
	}
	return types, nil
}

// Export writes the requested record types of img to CSV files.
func (p *Pipeline) Export(img *Image, reqs []Request) error {
	types, err := p.types(reqs)
	if err != nil {
		return err
	}

	cp, err := p.Layout.Decode(img.Data)
	if err != nil {
		return err
	}
	e := resolve.New(p.Reporter)
	if err := cp.Register(e); err != nil {
		return err
	}
	cp.Bind(e)

	tables := make([][][]string, len(types))
	for i, t := range types {
		tables[i] = cp.Collection(t).Table(e)
	}
	if n := e.Violations(); n > 0 {
		return fmt.Errorf("%d violations: %w", n, ErrViolations)
	}

	for i, req := range reqs {
		if err := writeFile(req.Path, p.Separator, tables[i]); err != nil {
			return err
		}
		p.logger().Info("exported records", "type", types[i].Name, "rows", len(tables[i])-1, "file", req.Path)
	}
	return nil
}

func writeFile(path string, sep byte, lines [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteTable(f, sep, lines); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Update replaces the requested record types of img with the content of
// the CSV files and saves the image. References from every record type,
// including the ones not replaced, are bound to names first and resolved
// again afterwards, so they follow rows that moved.
func (p *Pipeline) Update(img *Image, reqs []Request) error {
	types, err := p.types(reqs)
	if err != nil {
		return err
	}

	cp, err := p.Layout.Decode(img.Data)
	if err != nil {
		return err
	}

	// Problems in collections about to be replaced do not matter; everything
	// else is checked again below.
	replaced := make(map[string]bool, len(types))
	for _, t := range types {
		replaced[t.Name] = true
	}
	if err := cp.Register(resolve.New(nil)); err != nil {
		return err
	}
	carried := 0
	cp.Bind(resolve.New(resolve.ReporterFunc(func(v resolve.Violation) {
		if replaced[v.RecordType] {
			return
		}
		carried++
		if p.Reporter != nil {
			p.Reporter.Report(v)
		}
	})))

	for i, req := range reqs {
		if err := readFile(cp.Collection(types[i]), req.Path, p.Separator); err != nil {
			return err
		}
		p.logger().Debug("read records", "type", types[i].Name, "rows", cp.Collection(types[i]).Len(), "file", req.Path)
	}

	e := resolve.New(p.Reporter)
	if err := cp.Register(e); err != nil {
		return err
	}
	cp.Resolve(e)
	if n := carried + e.Violations(); n > 0 {
		return fmt.Errorf("%d violations: %w", n, ErrViolations)
	}

	data := bytes.Clone(img.Data)
	if err := cp.Encode(data); err != nil {
		return err
	}
	if bytes.Equal(data, img.Data) {
		p.logger().Info("image unchanged", "file", img.Path)
		return nil
	}

	if p.BeforeSave != nil {
		if err := p.BeforeSave(img.Path, bytes.Clone(img.Raw)); err != nil {
			return fmt.Errorf("image not saved: %w", err)
		}
	}
	copy(img.Data, data)
	if err := img.Save(); err != nil {
		return err
	}
	p.logger().Info("image updated", "file", img.Path)
	return nil
}

func readFile(c *Collection, path string, sep byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return c.ReadCSV(f, sep, path)
}
