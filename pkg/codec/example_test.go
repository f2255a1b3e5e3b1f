package codec_test

import (
	"fmt"

	"github.com/ssargent/rdtcsv/pkg/codec"
)

// ExampleReadBCD decodes a little-endian BCD field embedded in a buffer
func ExampleReadBCD() {
	buf := []byte{0xFF, 0xFF, 0x78, 0x56, 0x34, 0x12, 0xFF, 0xFF}

	fmt.Println(codec.ReadBCD(buf, 16, 32))
	fmt.Println(codec.ReadRevBCD(buf, 16, 32))
	// Output:
	// 12345678
	// 78563412
}

// ExampleReadTone shows how the tone kind travels in bits 16-17
func ExampleReadTone() {
	v := codec.ReadTone([]byte{0x23, 0xC0}, 0)

	fmt.Printf("kind=%#x number=%d\n", v&codec.ToneKindMask, v&codec.ToneValueMask)
	fmt.Println(v&codec.ToneKindMask == codec.ToneDCSInverted)
	// Output:
	// kind=0x30000 number=23
	// true
}

// ExampleWriteASCII writes a name into a fixed-width ASCII field
func ExampleWriteASCII() {
	buf := make([]byte, 6)

	codec.WriteASCII(buf, 0, codec.NewText("Relay", 6), 48)
	fmt.Printf("% x\n", buf)

	codec.WriteASCII(buf, 0, codec.NewText("", 6), 48)
	fmt.Printf("% x\n", buf)
	// Output:
	// 72 65 6c 61 79 00
	// ff ff ff ff ff ff
}
