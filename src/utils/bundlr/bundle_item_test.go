package bundlr

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

func signedItem(t *testing.T, data []byte, tags Tags) *BundleItem {
	item := &BundleItem{
		Data: data,
		Tags: tags,
	}
	_, err := item.Reader(loadTestSigner(t))
	require.NoError(t, err)
	return item
}

func TestBundleItemIdIsSignatureHash(t *testing.T) {
	item := signedItem(t, []byte("hello"), Tags{{Name: "Content-Type", Value: "text/plain"}})

	id := sha256.Sum256(item.Signature)
	assert.Equal(t, id[:], item.Id.Bytes())
	assert.Equal(t, SignatureTypeArweave, item.SignatureType)
}

func TestBundleItemVerify(t *testing.T) {
	item := signedItem(t, []byte("hello"), Tags{{Name: "Content-Type", Value: "text/plain"}})
	assert.NoError(t, item.Verify())

	item.Data = []byte("tampered")
	assert.Error(t, item.VerifySignature())
}

func TestBundleItemRoundTrip(t *testing.T) {
	anchor := make([]byte, 32)
	for i := range anchor {
		anchor[i] = byte(i)
	}

	item := &BundleItem{
		Anchor: arweave.Base64String(anchor),
		Data:   []byte("round trip payload"),
		Tags:   Tags{{Name: "a", Value: "b"}, {Name: "c", Value: "d"}},
	}
	buf, err := item.Reader(loadTestSigner(t))
	require.NoError(t, err)

	decoded := new(BundleItem)
	require.NoError(t, decoded.Unmarshal(buf.Bytes()))

	assert.Equal(t, item.Signature, decoded.Signature)
	assert.Equal(t, item.Owner, decoded.Owner)
	assert.Equal(t, item.Anchor.Bytes(), decoded.Anchor.Bytes())
	assert.Empty(t, decoded.Target.Bytes())
	assert.Equal(t, item.Tags, decoded.Tags)
	assert.Equal(t, item.Data, decoded.Data)
}

func TestBundleItemSizeMatchesSerialized(t *testing.T) {
	item := signedItem(t, []byte("sized payload"), Tags{{Name: "a", Value: "b"}})

	buf, err := item.Reader(nil)
	require.NoError(t, err)
	assert.Equal(t, item.Size(), buf.Len())
}

func TestBundleItemRejectsUnsigned(t *testing.T) {
	item := &BundleItem{Data: []byte("no signer")}
	err := item.Encode(nil, bytes.NewBuffer(nil))
	assert.ErrorIs(t, err, ErrSignerNotSpecified)
}
