package arweave

import (
	"bytes"
	"encoding/binary"
)

// Big-endian, length-prefixed binary writes used for v2 transaction tag
// lists and merkle note offsets.
type Encoder struct {
	*bytes.Buffer
}

func NewEncoder() Encoder {
	return Encoder{Buffer: bytes.NewBuffer(nil)}
}

func (self Encoder) WriteBuffer(val []byte, sizeBytes int) {
	size := len(val)
	for i := 0; i < sizeBytes; i++ {
		self.WriteByte(byte(size >> uint((sizeBytes-i-1)*8)))
	}
	self.Buffer.Write(val)
}

// WriteUint64 writes the low sizeBytes bytes of val, big-endian.
func (self Encoder) WriteUint64(val uint64, sizeBytes int) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, val)
	self.Buffer.Write(buf[8-sizeBytes:])
}

func (self Encoder) RawWrite(val []byte) {
	self.Buffer.Write(val)
}

// Offsets inside merkle nodes and proofs are 32-byte big-endian integers.
func NoteBytes(val uint64) []byte {
	out := make([]byte, 32)
	binary.BigEndian.PutUint64(out[24:], val)
	return out
}

// Length-prefixed form of a tag list: count, then for each tag the name and
// value, every element prefixed with its byte length.
func EncodeTags(tags []Tag) []byte {
	enc := NewEncoder()
	enc.WriteUint64(uint64(len(tags)), 2)
	for _, tag := range tags {
		enc.WriteBuffer(tag.Name, 2)
		enc.WriteBuffer(tag.Value, 2)
	}
	return enc.Buffer.Bytes()
}
