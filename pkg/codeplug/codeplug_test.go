package codeplug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/resolve"
)

func erased(l *Layout) []byte {
	data := make([]byte, l.Size)
	for i := range data {
		data[i] = 0xFF
	}
	return data
}

func TestDecode_StopsAtFirstEmptySlot(t *testing.T) {
	l := demoLayout(t)
	img, err := l.BlankImage("x", "rdt")
	require.NoError(t, err)

	contacts, _ := l.Type("Contacts")
	codec.WriteUTF16(img.Data, 0*24*8+32, codec.NewText("Alice", 10), 160)
	codec.WriteUTF16(img.Data, 2*24*8+32, codec.NewText("Hidden", 10), 160)

	cp, err := l.Decode(img.Data)
	require.NoError(t, err)
	c := cp.Collection(contacts)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Alice", c.KeyText(1).String())

	_, err = l.Decode(img.Data[:10])
	assert.ErrorIs(t, err, ErrImageSize)
}

func TestEncode_FillsUnusedSlots(t *testing.T) {
	l := demoLayout(t)
	data := erased(l)

	cp, err := l.Decode(data)
	require.NoError(t, err)
	for _, c := range cp.Collections {
		assert.Zero(t, c.Len(), c.Name())
	}
	data[0] = 0

	tg, _ := l.Type("Talkgroups")
	c := cp.Collection(tg)
	r := c.NewRecord()
	r.Values[0].Num = 3100
	copy(r.Values[1].Text, codec.NewText("Usa", 4))
	c.Records = append(c.Records, r)

	require.NoError(t, cp.Encode(data))
	assert.Equal(t, []byte{0x00, 0x00, 0x31, 0x00, 'u', 's', 'a', 0x00}, data[256:264])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, data[264:272])
	assert.Equal(t, byte(0xFF), data[0], "empty collections are filled too")

	again, err := l.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, codec.Numeric(3100), again.Collection(tg).KeyNumber(1))

	for i := 0; i < tg.Count; i++ {
		c.Records = append(c.Records, c.NewRecord())
	}
	assert.ErrorIs(t, cp.Encode(data), ErrTooManyRows)
}

func TestCollection_TableAndReadCSV(t *testing.T) {
	l := demoLayout(t)
	cp, err := l.Decode(erased(l))
	require.NoError(t, err)

	contacts, _ := l.Type("Contacts")
	c := cp.Collection(contacts)
	require.NoError(t, c.ReadCSV(strings.NewReader("Name;CallType\r\n\"Smith; J\";all\r\n"), ';', "contacts.csv"))
	require.Equal(t, 1, c.Len())

	e := resolve.New(nil)
	lines := c.Table(e)
	assert.Equal(t, [][]string{{"Id", "CallType", "Name"}, {"0", "All", "Smith; J"}}, lines)
	assert.Zero(t, e.Violations())

	var b strings.Builder
	require.NoError(t, WriteTable(&b, ';', lines))
	assert.Equal(t, "Id;CallType;Name\r\n0;All;\"Smith; J\"\r\n", b.String())

	err = c.ReadCSV(strings.NewReader("Name,Id\r\nA\r\n"), ',', "short.csv")
	assert.ErrorContains(t, err, "file short.csv, line 2: 1 fields, header has 2")
	assert.Equal(t, 1, c.Len(), "failed reads keep the old rows")

	err = c.ReadCSV(strings.NewReader("Colour\r\n"), ',', "bad.csv")
	assert.ErrorContains(t, err, "unknown field 'Colour' at column 0")
}

func TestRegister_EmptyKey(t *testing.T) {
	l := demoLayout(t)
	cp, err := l.Decode(erased(l))
	require.NoError(t, err)

	contacts, _ := l.Type("Contacts")
	c := cp.Collection(contacts)
	require.NoError(t, c.ReadCSV(strings.NewReader("Id\r\n5\r\n"), ',', "ids.csv"))

	var got resolve.Collector
	require.NoError(t, cp.Register(resolve.New(&got)))
	assert.Equal(t, []string{"name is empty"}, got.Messages())
}
