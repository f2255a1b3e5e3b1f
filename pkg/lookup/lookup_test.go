package lookup

import (
	"math/rand"
	"testing"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAscending(t *testing.T, tab *Table) {
	t.Helper()
	keys := tab.Keys()
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i], "keys out of order at %d", i)
	}
}

func TestNew(t *testing.T) {
	tab, err := New(32)
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
	assert.Equal(t, 32, tab.Cap())

	_, err = New(-1)
	assert.ErrorIs(t, err, ErrCapacity)

	_, err = New(MaxCapacity + 1)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestTable_AddAndFindNames(t *testing.T) {
	tab, err := New(32)
	require.NoError(t, err)

	msg1 := codec.NewText("abc", 4)
	msg2 := codec.NewText("abc", 4)
	msg3 := codec.NewText("xyz", 4)

	dup, err := tab.AddText(msg1, 1)
	require.NoError(t, err)
	assert.Zero(t, dup)

	dup, err = tab.AddText(msg2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), dup)

	dup, err = tab.AddText(msg3, 3)
	require.NoError(t, err)
	assert.Zero(t, dup)

	assert.Equal(t, uint32(1), tab.FindString("abc"))
	assert.Equal(t, uint32(1), tab.FindString("ABC"))
	assert.Equal(t, uint32(3), tab.FindString("xyz"))
	assert.Equal(t, uint32(0), tab.FindString("nnn"))

	row, text := tab.Find(crc.StringLower("abc"))
	assert.Equal(t, uint32(1), row)
	assert.Equal(t, "abc", text.String())
	assert.Equal(t, 2, tab.Len())
}

func TestTable_AddNumbers(t *testing.T) {
	tab, err := New(8)
	require.NoError(t, err)

	for i, key := range []uint32{900, 100, 500, 300} {
		dup, err := tab.AddNumber(key, uint32(i+1))
		require.NoError(t, err)
		assert.Zero(t, dup)
	}

	assert.Equal(t, []uint32{100, 300, 500, 900}, tab.Keys())

	row, text := tab.Find(500)
	assert.Equal(t, uint32(3), row)
	assert.Nil(t, text)

	row, _ = tab.Find(501)
	assert.Zero(t, row)
}

func TestTable_DuplicateKeepsFirstRow(t *testing.T) {
	tab, err := New(4)
	require.NoError(t, err)

	_, err = tab.AddNumber(7, 2)
	require.NoError(t, err)

	for row := uint32(3); row < 10; row++ {
		dup, err := tab.AddNumber(7, row)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), dup)
	}
	assert.Equal(t, 1, tab.Len())

	row, _ := tab.Find(7)
	assert.Equal(t, uint32(2), row)
}

func TestTable_Overflow(t *testing.T) {
	tab, err := New(3)
	require.NoError(t, err)

	for i, key := range []uint32{30, 10, 20} {
		_, err := tab.AddNumber(key, uint32(i+1))
		require.NoError(t, err)
	}

	_, err = tab.AddNumber(15, 4)
	assert.ErrorIs(t, err, ErrOverflow)

	// A duplicate still reports the original row when the table is full.
	dup, err := tab.AddNumber(20, 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), dup)

	assert.Equal(t, []uint32{10, 20, 30}, tab.Keys())
	for key, want := range map[uint32]uint32{10: 2, 20: 3, 30: 1} {
		row, _ := tab.Find(key)
		assert.Equal(t, want, row)
	}
}

func TestTable_ZeroCapacity(t *testing.T) {
	tab, err := New(0)
	require.NoError(t, err)

	_, err = tab.AddNumber(1, 1)
	assert.ErrorIs(t, err, ErrOverflow)

	row, _ := tab.Find(1)
	assert.Zero(t, row)
}

func TestTable_RandomInsertionsStayOrdered(t *testing.T) {
	const capacity = 2000
	rng := rand.New(rand.NewSource(42))

	tab, err := New(capacity)
	require.NoError(t, err)

	first := make(map[uint32]uint32)
	for row := uint32(1); tab.Len() < capacity; row++ {
		key := uint32(rng.Intn(5000))
		dup, err := tab.AddNumber(key, row)
		require.NoError(t, err)

		if want, seen := first[key]; seen {
			assert.Equal(t, want, dup)
		} else {
			assert.Zero(t, dup)
			first[key] = row
		}
	}

	assertAscending(t, tab)
	assert.Len(t, first, capacity)
	for key, want := range first {
		row, _ := tab.Find(key)
		require.Equal(t, want, row)
	}
}

func TestTable_ResetAndFree(t *testing.T) {
	tab, err := New(4)
	require.NoError(t, err)

	_, err = tab.AddNumber(1, 1)
	require.NoError(t, err)
	_, err = tab.AddNumber(2, 2)
	require.NoError(t, err)

	tab.Reset()
	assert.Equal(t, 0, tab.Len())
	assert.Equal(t, 4, tab.Cap())
	row, _ := tab.Find(1)
	assert.Zero(t, row)

	full := tab.entries[:cap(tab.entries)]
	for _, e := range full {
		assert.Equal(t, Entry{}, e)
	}

	dup, err := tab.AddNumber(1, 3)
	require.NoError(t, err)
	assert.Zero(t, dup)

	tab.Free()
	assert.Equal(t, 0, tab.Cap())
	_, err = tab.AddNumber(9, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestTable_RowZeroPanics(t *testing.T) {
	tab, err := New(1)
	require.NoError(t, err)
	assert.Panics(t, func() { _, _ = tab.AddNumber(1, 0) })
}

func TestTable_Stats(t *testing.T) {
	tab, err := New(10)
	require.NoError(t, err)
	_, err = tab.AddText(codec.NewText("Bob", 8), 1)
	require.NoError(t, err)

	stats := tab.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 10, stats.Capacity)
}
