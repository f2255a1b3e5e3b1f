// Package tabular reads and writes the CSV files records are exported to.
//
// The format is RFC 4180 with a configurable one-byte separator. Fields are
// byte strings: text is carried one byte per code unit in both directions,
// so exported files are Latin-1 rather than UTF-8.
package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Status tells what ended a field.
type Status int

const (
	// OK means a separator followed the field.
	OK Status = iota
	// EOL means the field was the last of its line.
	EOL
	// EOF means the field was the last of the file.
	EOF
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case EOL:
		return "EOL"
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

const quote = '"'

type readState int

const (
	waitingFirst readState = iota
	unquoted
	quoted
	innerQuote
	waitingLF
)

// Reader splits a CSV stream into fields.
type Reader struct {
	r    *bufio.Reader
	sep  byte
	line int
	buf  []byte
}

// NewReader returns a reader splitting fields at sep.
func NewReader(r io.Reader, sep byte) *Reader {
	return &Reader{r: bufio.NewReader(r), sep: sep, line: 1}
}

// Line returns the 1-based line the next field starts on.
func (r *Reader) Line() int {
	return r.line
}

// Next reads one field. A CR must be followed by LF; a bare LF also ends a
// line. At the end of input Next keeps returning an empty field with EOF.
func (r *Reader) Next() (string, Status, error) {
	r.buf = r.buf[:0]
	state := waitingFirst

	for {
		c, err := r.r.ReadByte()
		if errors.Is(err, io.EOF) {
			switch state {
			case quoted:
				return "", EOF, fmt.Errorf("line %d: %w", r.line, ErrUnexpectedEOF)
			case waitingLF:
				return "", EOF, fmt.Errorf("line %d: %w", r.line, ErrMissingLF)
			}
			return string(r.buf), EOF, nil
		}
		if err != nil {
			return "", EOF, err
		}

		switch state {
		case waitingFirst, unquoted:
			switch {
			case c == '\r':
				state = waitingLF
			case c == '\n':
				r.line++
				return string(r.buf), EOL, nil
			case c == r.sep:
				return string(r.buf), OK, nil
			case c == quote && state == waitingFirst:
				state = quoted
			case c == quote:
				return "", OK, fmt.Errorf("line %d: %w", r.line, ErrUnexpectedQuote)
			default:
				r.buf = append(r.buf, c)
				state = unquoted
			}
		case quoted:
			if c == quote {
				state = innerQuote
				continue
			}
			if c == '\n' {
				r.line++
			}
			r.buf = append(r.buf, c)
		case innerQuote:
			switch {
			case c == quote:
				r.buf = append(r.buf, c)
				state = quoted
			case c == '\r':
				state = waitingLF
			case c == '\n':
				r.line++
				return string(r.buf), EOL, nil
			case c == r.sep:
				return string(r.buf), OK, nil
			default:
				return "", OK, fmt.Errorf("line %d: %w", r.line, ErrInvalidPostQuote)
			}
		case waitingLF:
			if c != '\n' {
				return "", OK, fmt.Errorf("line %d: %w", r.line, ErrMissingLF)
			}
			r.line++
			return string(r.buf), EOL, nil
		}
	}
}

// ReadRecord reads the fields of one line. Blank lines are skipped. It
// returns io.EOF once the input is exhausted.
func (r *Reader) ReadRecord() ([]string, error) {
	for {
		var fields []string
		for {
			tok, status, err := r.Next()
			if err != nil {
				return nil, err
			}
			if status == EOF && tok == "" && len(fields) == 0 {
				return nil, io.EOF
			}
			fields = append(fields, tok)
			if status != OK {
				break
			}
		}
		if len(fields) == 1 && fields[0] == "" {
			continue
		}
		return fields, nil
	}
}
