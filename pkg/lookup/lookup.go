// Package lookup implements the sorted key index used to turn names back
// into row numbers.
//
// A Table is built once per referenced record collection: it is created with
// the collection's maximum row count as capacity, filled with one Add per row
// in row order, queried any number of times and then dropped. Building and
// querying must not interleave; once building is done a Table may be shared
// read-only.
package lookup

import (
	"cmp"
	"slices"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
)

// Entry maps a key to the row that first defined it.
type Entry struct {
	Key  uint32     // Lower-cased name CRC, or the literal numeric key
	Text codec.Text // Name owned by the row, nil for numeric keys
	Row  uint32     // 1-based row number
}

// Table is a fixed-capacity array of entries kept strictly ascending by key.
type Table struct {
	entries []Entry
}

// New allocates a table that can hold capacity entries.
func New(capacity int) (*Table, error) {
	if capacity < 0 || capacity > MaxCapacity {
		return nil, ErrCapacity
	}
	return &Table{entries: make([]Entry, 0, capacity)}, nil
}

// MaxCapacity bounds a single table; codeplug collections stay far below it.
const MaxCapacity = 1 << 20

func (t *Table) search(key uint32) (int, bool) {
	return slices.BinarySearchFunc(t.entries, key, func(e Entry, k uint32) int {
		return cmp.Compare(e.Key, k)
	})
}

// Add inserts key for row. If key is already present the table is left
// unchanged and the row that claimed it first is returned, so a nonzero
// result means row is a duplicate. ErrOverflow is returned when the table
// is full.
func (t *Table) Add(key uint32, text codec.Text, row uint32) (uint32, error) {
	if row == 0 {
		panic("lookup: row numbers start at 1")
	}

	pos, found := t.search(key)
	if found {
		return t.entries[pos].Row, nil
	}
	n := len(t.entries)
	if n >= cap(t.entries) {
		return 0, ErrOverflow
	}

	t.entries = t.entries[:n+1]
	copy(t.entries[pos+1:], t.entries[pos:n])
	t.entries[pos] = Entry{Key: key, Text: text, Row: row}
	return 0, nil
}

// AddText inserts a name keyed by its lower-cased CRC. The table keeps a
// reference to text, which must outlive it.
func (t *Table) AddText(text codec.Text, row uint32) (uint32, error) {
	return t.Add(crc.TextLower(text), text, row)
}

// AddNumber inserts a numeric key.
func (t *Table) AddNumber(key uint32, row uint32) (uint32, error) {
	return t.Add(key, nil, row)
}

// Find returns the row stored for key and its name, or 0 if key is absent.
func (t *Table) Find(key uint32) (uint32, codec.Text) {
	pos, found := t.search(key)
	if !found {
		return 0, nil
	}
	e := t.entries[pos]
	return e.Row, e.Text
}

// FindString looks a name up case-insensitively.
func (t *Table) FindString(name string) uint32 {
	row, _ := t.Find(crc.StringLower(name))
	return row
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Cap returns the capacity the table was created with.
func (t *Table) Cap() int {
	return cap(t.entries)
}

// Keys returns the keys in ascending order (for debugging/testing)
func (t *Table) Keys() []uint32 {
	keys := make([]uint32, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Reset empties the table, keeping its capacity. Released slots are zeroed
// so a stale entry can never be found again.
func (t *Table) Reset() {
	clear(t.entries)
	t.entries = t.entries[:0]
}

// Free releases the backing storage. A freed table has capacity 0.
func (t *Table) Free() {
	t.Reset()
	t.entries = nil
}

// Stats returns table statistics
func (t *Table) Stats() *Stats {
	return &Stats{
		Entries:  len(t.entries),
		Capacity: cap(t.entries),
	}
}

// Stats holds statistics about a table
type Stats struct {
	Entries  int
	Capacity int
}
