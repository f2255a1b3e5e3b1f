package tabular

import (
	"bufio"
	"io"
)

// Writer emits CSV fields. Lines end with CRLF. The first write error is
// kept and returned by Flush; later writes are dropped.
type Writer struct {
	w   *bufio.Writer
	sep byte
	err error
}

// NewWriter returns a writer separating fields with sep.
func NewWriter(w io.Writer, sep byte) *Writer {
	return &Writer{w: bufio.NewWriter(w), sep: sep}
}

func needsQuoting(s string, sep byte) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == sep {
			return true
		}
		plain := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || (c >= '_' && c < 0x80)
		if !plain {
			return true
		}
	}
	return false
}

// Field writes s, quoted when it holds the separator or anything but
// letters, digits and the printable characters from '_' up.
func (w *Writer) Field(s string) {
	if w.err != nil {
		return
	}
	if !needsQuoting(s, w.sep) {
		_, w.err = w.w.WriteString(s)
		return
	}

	w.err = w.w.WriteByte(quote)
	for i := 0; i < len(s) && w.err == nil; i++ {
		if s[i] == quote {
			w.err = w.w.WriteByte(quote)
		}
		if w.err == nil {
			w.err = w.w.WriteByte(s[i])
		}
	}
	if w.err == nil {
		w.err = w.w.WriteByte(quote)
	}
}

// Separator writes the field separator.
func (w *Writer) Separator() {
	if w.err == nil {
		w.err = w.w.WriteByte(w.sep)
	}
}

// EndOfLine writes CRLF.
func (w *Writer) EndOfLine() {
	if w.err == nil {
		_, w.err = w.w.WriteString("\r\n")
	}
}

// Record writes fields as one line.
func (w *Writer) Record(fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.Separator()
		}
		w.Field(f)
	}
	w.EndOfLine()
}

// Flush writes buffered data and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
