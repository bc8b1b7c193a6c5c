package arweave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteBytes(t *testing.T) {
	out := NoteBytes(0x0102)
	assert.Len(t, out, 32)
	assert.Equal(t, byte(0x01), out[30])
	assert.Equal(t, byte(0x02), out[31])
	for _, b := range out[:30] {
		assert.Zero(t, b)
	}
}

func TestEncodeTags(t *testing.T) {
	out := EncodeTags([]Tag{
		TagFromStrings("a", "bc"),
	})

	assert.Equal(t, []byte{
		0x00, 0x01, // count
		0x00, 0x01, 'a', // name
		0x00, 0x02, 'b', 'c', // value
	}, out)
}

func TestEncodeTagsEmpty(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00}, EncodeTags(nil))
}

func TestEncoderWriteBuffer(t *testing.T) {
	enc := NewEncoder()
	enc.WriteBuffer([]byte{0xaa}, 2)
	enc.RawWrite([]byte{0xbb})
	assert.Equal(t, []byte{0x00, 0x01, 0xaa, 0xbb}, enc.Buffer.Bytes())
}
