package bundlr

import (
	"bytes"
	"encoding/binary"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

// Binary bundle of data items, carried as the payload of one transaction.
// Layout: count (32B LE), then (item_len 32B LE, item_id 32B) per item,
// then the serialized items back to back.
type Bundle struct {
	Items []*BundleItem
}

const bundleEntrySize = 32 + 32

// Pack serializes the bundle. Every item must already be signed.
func (self *Bundle) Pack() (out []byte, err error) {
	headers := make([]byte, 0, len(self.Items)*bundleEntrySize)
	bodies := bytes.NewBuffer(nil)

	for _, item := range self.Items {
		if len(item.Id) == 0 {
			err = ErrSignerNotSpecified
			return
		}

		var body *bytes.Buffer
		body, err = item.Reader(nil)
		if err != nil {
			return
		}

		headers = append(headers, LongTo32ByteArray(body.Len())...)
		headers = append(headers, item.Id...)

		_, err = bodies.ReadFrom(body)
		if err != nil {
			return
		}
	}

	out = make([]byte, 0, 32+len(headers)+bodies.Len())
	out = append(out, LongTo32ByteArray(len(self.Items))...)
	out = append(out, headers...)
	out = append(out, bodies.Bytes()...)
	return
}

// Unpack parses a bundle payload back into its data items and checks that
// every header entry matches the item it points at.
func Unpack(data []byte) (self *Bundle, err error) {
	if len(data) < 32 {
		err = ErrBadBundleHeader
		return
	}

	count := int(binary.LittleEndian.Uint64(data[:8]))
	headerEnd := 32 + count*bundleEntrySize
	if headerEnd > len(data) {
		err = ErrBadBundleHeader
		return
	}

	self = &Bundle{Items: make([]*BundleItem, count)}

	cursor := headerEnd
	for i := 0; i < count; i++ {
		entry := data[32+i*bundleEntrySize:]
		itemLen := int(binary.LittleEndian.Uint64(entry[:8]))
		id := arweave.Base64String(entry[32:64])

		if cursor+itemLen > len(data) {
			err = ErrBadBundleHeader
			return nil, err
		}

		item := new(BundleItem)
		err = item.Unmarshal(data[cursor : cursor+itemLen])
		if err != nil {
			return nil, err
		}
		item.Id = id

		if err = item.Verify(); err != nil {
			return nil, err
		}

		self.Items[i] = item
		cursor += itemLen
	}

	return
}
