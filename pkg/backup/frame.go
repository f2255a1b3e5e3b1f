package backup

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"
)

const frameHeaderSize = 20

// frame is the stored form of a snapshot:
// [CRC32(4)][PathSize(4)][DataSize(4)][Timestamp(8)][Path][Data]
type frame struct {
	CRC32     uint32
	PathSize  uint32
	DataSize  uint32
	Timestamp uint64 // Unix nanoseconds
	Path      []byte
	Data      []byte
}

func newFrame(path string, data []byte, now time.Time) *frame {
	if uint64(len(path)) > uint64(^uint32(0)) || uint64(len(data)) > uint64(^uint32(0)) {
		panic("backup: snapshot too large")
	}
	return &frame{
		PathSize:  uint32(len(path)),
		DataSize:  uint32(len(data)),
		Timestamp: uint64(now.UnixNano()),
		Path:      []byte(path),
		Data:      data,
	}
}

func (f *frame) encode() []byte {
	f.CRC32 = f.checksum()

	buf := make([]byte, frameHeaderSize+len(f.Path)+len(f.Data))
	binary.LittleEndian.PutUint32(buf[0:], f.CRC32)
	binary.LittleEndian.PutUint32(buf[4:], f.PathSize)
	binary.LittleEndian.PutUint32(buf[8:], f.DataSize)
	binary.LittleEndian.PutUint64(buf[12:], f.Timestamp)
	copy(buf[frameHeaderSize:], f.Path)
	copy(buf[frameHeaderSize+len(f.Path):], f.Data)
	return buf
}

// decodeFrame parses buf without copying and checks its CRC.
func decodeFrame(buf []byte) (*frame, error) {
	if len(buf) < frameHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a header", ErrCorrupt, len(buf))
	}

	f := &frame{
		CRC32:     binary.LittleEndian.Uint32(buf[0:4]),
		PathSize:  binary.LittleEndian.Uint32(buf[4:8]),
		DataSize:  binary.LittleEndian.Uint32(buf[8:12]),
		Timestamp: binary.LittleEndian.Uint64(buf[12:20]),
	}
	end := uint64(frameHeaderSize) + uint64(f.PathSize) + uint64(f.DataSize)
	if uint64(len(buf)) != end {
		return nil, fmt.Errorf("%w: %d bytes, header says %d", ErrCorrupt, len(buf), end)
	}
	f.Path = buf[frameHeaderSize : frameHeaderSize+f.PathSize]
	f.Data = buf[frameHeaderSize+f.PathSize:]

	if sum := f.checksum(); sum != f.CRC32 {
		return nil, fmt.Errorf("%w: CRC32 mismatch: %08x != %08x", ErrCorrupt, f.CRC32, sum)
	}
	return f, nil
}

// checksum covers everything but the CRC field itself.
func (f *frame) checksum() uint32 {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], f.PathSize)
	binary.LittleEndian.PutUint32(hdr[4:], f.DataSize)
	binary.LittleEndian.PutUint64(hdr[8:], f.Timestamp)

	crc := crc32.NewIEEE()
	crc.Write(hdr[:])
	crc.Write(f.Path)
	crc.Write(f.Data)
	return crc.Sum32()
}
