package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ssargent/rdtcsv/pkg/codeplug"
	"github.com/ssargent/rdtcsv/pkg/resolve"
)

// parseRequests turns "flag=file.csv" arguments into conversion requests.
func parseRequests(args []string) ([]codeplug.Request, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no record types given, expected flag=file.csv")
	}
	reqs := make([]codeplug.Request, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		flag, path, ok := strings.Cut(arg, "=")
		flag = strings.TrimPrefix(flag, "-")
		if !ok || flag == "" || path == "" {
			return nil, fmt.Errorf("invalid argument %q, expected flag=file.csv", arg)
		}
		key := strings.ToLower(flag)
		if seen[key] {
			return nil, fmt.Errorf("record type %q given twice", flag)
		}
		seen[key] = true
		reqs = append(reqs, codeplug.Request{Flag: flag, Path: path})
	}
	return reqs, nil
}

// printer writes every violation to w on its own line.
func printer(w io.Writer) resolve.Reporter {
	return resolve.ReporterFunc(func(v resolve.Violation) {
		fmt.Fprintln(w, v.String())
	})
}

func (s *settings) pipeline(layout *codeplug.Layout, out io.Writer) *codeplug.Pipeline {
	return &codeplug.Pipeline{
		Layout:    layout,
		Separator: s.separator,
		Reporter:  printer(out),
		Logger:    s.logger,
	}
}

// runExport writes the requested record types of the image to CSV files.
func runExport(s *settings, imagePath string, reqs []codeplug.Request, out io.Writer) error {
	layout, err := s.layout()
	if err != nil {
		return err
	}
	img, err := layout.LoadImage(imagePath)
	if err != nil {
		return err
	}
	s.logger.Debug("image loaded", "file", imagePath, "format", img.Format.Name)

	return s.pipeline(layout, out).Export(img, reqs)
}

// runUpdate replaces the requested record types of the image with the CSV
// files. Unless disabled, the previous image is saved to the backup store
// first.
func runUpdate(s *settings, imagePath string, reqs []codeplug.Request, noBackup bool, out io.Writer) error {
	layout, err := s.layout()
	if err != nil {
		return err
	}
	img, err := layout.LoadImage(imagePath)
	if err != nil {
		return err
	}

	p := s.pipeline(layout, out)
	if s.cfg.Backup.Enabled && !noBackup {
		p.BeforeSave = func(path string, old []byte) error {
			store, err := openBackups(s.cfg.Backup.Dir)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Create(absPath(path), old)
			if err != nil {
				return err
			}
			s.logger.Info("backup created", "id", id.String(), "file", path)
			return nil
		}
	}
	return p.Update(img, reqs)
}
