package crc

import (
	"hash/crc32"
	"testing"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/stretchr/testify/assert"
)

func TestAddByte_MatchesIEEE(t *testing.T) {
	data := []byte("The quick brown fox")

	var sum uint32
	for _, b := range data {
		sum = AddByte(sum, b)
	}
	assert.Equal(t, crc32.ChecksumIEEE(data), sum)
}

func TestKnownDigests(t *testing.T) {
	// Digests of the legacy command line switches.
	testCases := []struct {
		input string
		want  uint32
	}{
		{"-sc", 0x1F7D1676},
		{"-tab", 0xFFBE32E1},
		{"-u", 0x419CCDA3},
		{"-e", 0x5C2BDDC7},
		{"-?", 0xD795652D},
		{"-h", 0x229AA17A},
		{"ch", 0x4C60C3F1},
		{"cont", 0xE74AF8E0},
		{"", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, String(tc.input))
			assert.Equal(t, tc.want, StringLower(tc.input))
		})
	}
}

func TestLowerCaseVariants(t *testing.T) {
	assert.Equal(t, StringLower("alice"), StringLower("ALICE"))
	assert.Equal(t, StringLower("alice"), StringLower("Alice"))
	assert.NotEqual(t, String("alice"), String("Alice"))
	assert.Equal(t, String("alice"), StringLower("Alice"))

	assert.Equal(t, StringLower("Alice"), TextLower(codec.NewText("aLiCe", 16)))
	assert.Equal(t, StringLower("abc"), StringLower("abc\x00def"))
	assert.Equal(t, String("abc"), String("abc\x00def"))
}

func TestTextLower_WideUnits(t *testing.T) {
	txt := codec.Text{'A', 0x263A, 'b', 0}
	assert.Equal(t, StringLower("a?b"), TextLower(txt))
	assert.Equal(t, StringLower("\xe9"), TextLower(codec.Text{0xE9}))
}

func TestChaining(t *testing.T) {
	assert.Equal(t, StringLower("contact"), AddStringLower(StringLower("con"), "TACT"))
	assert.Equal(t, TextLower(codec.NewText("RelayNet", 8)), AddTextLower(StringLower("relay"), codec.NewText("NET", 3)))
}
