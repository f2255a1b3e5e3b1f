package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/field"
	"github.com/ssargent/rdtcsv/pkg/lookup"
)

type nameTarget struct {
	names []codec.Text
}

func (n *nameTarget) Name() string { return "Contacts" }
func (n *nameTarget) Len() int { return len(n.names) }
func (n *nameTarget) KeyKind() field.KeyKind { return field.KeyName }
func (n *nameTarget) KeyText(row int) codec.Text { return n.names[row-1] }
func (n *nameTarget) KeyNumber(int) codec.Numeric { return 0 }

type numberTarget struct {
	ids []codec.Numeric
}

func (n *numberTarget) Name() string { return "Talkgroups" }
func (n *numberTarget) Len() int { return len(n.ids) }
func (n *numberTarget) KeyKind() field.KeyKind { return field.KeyNumber }
func (n *numberTarget) KeyText(int) codec.Text { return nil }
func (n *numberTarget) KeyNumber(row int) codec.Numeric { return n.ids[row-1] }

func contacts(t *testing.T) (*nameTarget, *lookup.Table) {
	t.Helper()
	target := &nameTarget{names: []codec.Text{codec.NewText("Alice", 16), codec.NewText("Bob", 16)}}
	tab, err := lookup.New(4)
	require.NoError(t, err)
	for i, n := range target.names {
		dup, err := tab.AddText(n, uint32(i+1))
		require.NoError(t, err)
		require.Zero(t, dup)
	}
	return target, tab
}

func loc(d *field.Descriptor) Location {
	return Location{RecordType: "Channels", RecordIndex: 3, Field: d}
}

func TestResolve_NameKeyed(t *testing.T) {
	_, tab := contacts(t)
	var c Collector
	e := New(&c)
	d := field.NewDescriptor("Contact", field.Integer)

	alice := field.NewTokenReference("Alice")
	assert.True(t, e.Resolve(loc(d), &alice, tab, "Contacts", field.KeyName))
	assert.Equal(t, uint32(1), alice.Row)
	assert.Equal(t, "Alice", alice.Name.String())

	upper := field.NewTokenReference("BOB")
	assert.True(t, e.Resolve(loc(d), &upper, tab, "Contacts", field.KeyName))
	assert.Equal(t, uint32(2), upper.Row)

	carl := field.NewTokenReference("Carl")
	assert.False(t, e.Resolve(loc(d), &carl, tab, "Contacts", field.KeyName))
	assert.Equal(t, field.RowAbsent, carl.Row)

	require.Len(t, c.Violations, 1)
	assert.Equal(t, 1, e.Violations())
	assert.Contains(t, c.Violations[0].Message, "Carl")
	assert.Equal(t, "name 'Carl' not found in table Contacts", c.Violations[0].Message)
	assert.Equal(t, "Record Channels, line 4, field Contact, violation: name 'Carl' not found in table Contacts", c.Violations[0].String())
}

func TestResolve_TruncatedSample(t *testing.T) {
	_, tab := contacts(t)
	var c Collector
	e := New(&c)

	ref := field.NewTokenReference("A name that is far too long")
	assert.False(t, e.Resolve(loc(field.NewDescriptor("Contact", field.Integer)), &ref, tab, "Contacts", field.KeyName))
	require.Len(t, c.Violations, 1)
	assert.Equal(t, "name 'A name that is fa...' not found in table Contacts", c.Violations[0].Message)
}

func TestResolve_Absent(t *testing.T) {
	_, tab := contacts(t)
	e := New(nil)
	d := field.NewDescriptor("Contact", field.Integer)

	var empty field.Reference
	empty.Row = 7
	assert.True(t, e.Resolve(loc(d), &empty, tab, "Contacts", field.KeyName))
	assert.Equal(t, field.RowAbsent, empty.Row)

	skip := field.Reference{Row: field.RowSkip, Token: "Carl"}
	assert.True(t, e.Resolve(loc(d), &skip, tab, "Contacts", field.KeyName))
	assert.Equal(t, field.RowSkip, skip.Row)

	assert.Zero(t, e.Violations())
}

func TestResolve_EnumeratorWinsOverRow(t *testing.T) {
	target := &nameTarget{names: []codec.Text{codec.NewText("None", 16)}}
	tab, err := lookup.New(1)
	require.NoError(t, err)
	_, err = tab.AddText(target.names[0], 1)
	require.NoError(t, err)

	e := New(nil)
	d := field.NewDescriptor("Contact", field.Integer, field.NewEnumerator("None", 0xFFFE))

	ref := field.NewTokenReference("none")
	assert.True(t, e.Resolve(loc(d), &ref, tab, "Contacts", field.KeyName))
	assert.Equal(t, uint32(0xFFFE), ref.Row)

	ref = field.Reference{Row: 0xFFFE}
	assert.True(t, e.Bind(loc(d), &ref, target))
	assert.Nil(t, ref.Name)
	assert.Equal(t, "None", ref.Sample)

	assert.True(t, e.Resolve(loc(d), &ref, tab, "Contacts", field.KeyName), "bound enumerators resolve again")
	assert.Equal(t, uint32(0xFFFE), ref.Row)
	assert.Zero(t, e.Violations())
}

func TestResolve_NumberKeyed(t *testing.T) {
	tab, err := lookup.New(4)
	require.NoError(t, err)
	_, err = tab.AddNumber(91, 1)
	require.NoError(t, err)
	_, err = tab.AddNumber(3100, 2)
	require.NoError(t, err)

	var c Collector
	e := New(&c)
	d := field.NewDescriptor("Talkgroup", field.Integer,
		field.NewEnumerator("Off", 0), field.NewEnumerator("All", 0xFFFE))

	ref := field.NewTokenReference("3100")
	assert.True(t, e.Resolve(loc(d), &ref, tab, "Talkgroups", field.KeyNumber))
	assert.Equal(t, uint32(2), ref.Row)
	assert.Equal(t, uint32(3100), ref.ID)

	ref = field.Reference{ID: 91}
	assert.True(t, e.Resolve(loc(d), &ref, tab, "Talkgroups", field.KeyNumber))
	assert.Equal(t, uint32(1), ref.Row)

	ref = field.NewTokenReference("all")
	assert.True(t, e.Resolve(loc(d), &ref, tab, "Talkgroups", field.KeyNumber))
	assert.Equal(t, uint32(0xFFFE), ref.Row)

	ref = field.NewTokenReference("Everyone")
	assert.False(t, e.Resolve(loc(d), &ref, tab, "Talkgroups", field.KeyNumber))

	ref = field.NewTokenReference("9")
	assert.False(t, e.Resolve(loc(d), &ref, tab, "Talkgroups", field.KeyNumber))

	assert.Equal(t, []string{
		"invalid value 'Everyone'. Valid values are 'Off' and 'All'",
		"name '9' not found in table Talkgroups",
	}, c.Messages())
}

func TestBind_NameKeyed(t *testing.T) {
	target, _ := contacts(t)
	var c Collector
	e := New(&c)
	d := field.NewDescriptor("Contact", field.Integer)

	ref := field.Reference{Row: 2}
	assert.True(t, e.Bind(loc(d), &ref, target))
	assert.Equal(t, "Bob", ref.Name.String())
	assert.Equal(t, "Bob", ref.Sample)
	assert.Equal(t, uint32(0xf5cbb140), ref.ID)

	target.names[1][0] = 'R'
	assert.Equal(t, "Rob", ref.Name.String(), "bound name aliases the target row")

	ref = field.Reference{Row: 5}
	assert.False(t, e.Bind(loc(d), &ref, target))
	assert.Nil(t, ref.Name)

	ref = field.Reference{}
	assert.True(t, e.Bind(loc(d), &ref, target))
	assert.Nil(t, ref.Name)

	require.Len(t, c.Violations, 1)
	assert.Equal(t, "row 5 not found in table Contacts", c.Violations[0].Message)
}

func TestBind_NumberKeyed(t *testing.T) {
	target := &numberTarget{ids: []codec.Numeric{91, 3100}}
	e := New(nil)

	ref := field.Reference{Row: 2}
	assert.True(t, e.Bind(loc(field.NewDescriptor("Talkgroup", field.Integer)), &ref, target))
	assert.Nil(t, ref.Name)
	assert.Equal(t, uint32(3100), ref.ID)
	assert.Equal(t, "3100", ref.Sample)
}

func TestBindResolve_NumericKeyZero(t *testing.T) {
	target := &numberTarget{ids: []codec.Numeric{0, 7}}
	tab, err := lookup.New(2)
	require.NoError(t, err)
	for i, id := range target.ids {
		_, err := tab.AddNumber(id, uint32(i+1))
		require.NoError(t, err)
	}
	d := field.NewDescriptor("Talkgroup", field.Integer)
	e := New(nil)

	ref := field.Reference{Row: 1}
	require.True(t, e.Bind(loc(d), &ref, target))
	assert.Equal(t, "0", ref.Token)

	require.True(t, e.Resolve(loc(d), &ref, tab, target.Name(), field.KeyNumber))
	assert.Equal(t, uint32(1), ref.Row)
	assert.Zero(t, e.Violations())

	absent := field.Reference{}
	require.True(t, e.Bind(loc(d), &absent, target))
	require.True(t, e.Resolve(loc(d), &absent, tab, target.Name(), field.KeyNumber))
	assert.Equal(t, field.RowAbsent, absent.Row)
}

func TestViolation_String(t *testing.T) {
	v := Violation{RecordType: "Zones", RecordIndex: NoIndex, Field: "Name", Message: "duplicate name"}
	assert.Equal(t, "Record Zones, field Name, violation: duplicate name", v.String())

	var got []Violation
	e := New(ReporterFunc(func(v Violation) { got = append(got, v) }))
	e.Reportf(Location{RecordType: "Zones", RecordIndex: 0}, "bad %d", 1)
	assert.Equal(t, []Violation{{RecordType: "Zones", RecordIndex: 0, Message: "bad 1"}}, got)
}
