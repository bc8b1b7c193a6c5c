package arweave_test

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/bundlr"
)

func testSigner(t *testing.T) *bundlr.ArweaveSigner {
	signer, err := bundlr.FromKeypairPath("../bundlr/testdata/arweave-key.json")
	require.NoError(t, err)
	return signer
}

func testTransaction(t *testing.T, data []byte) *arweave.Transaction {
	tx := &arweave.Transaction{
		Format:   2,
		Quantity: arweave.BigIntFromUint64(0),
		Reward:   arweave.BigIntFromUint64(1234),
		LastTx:   arweave.Base64String(make([]byte, 48)),
		Tags: []arweave.Tag{
			arweave.TagFromStrings("Bundle-Format", "binary"),
			arweave.TagFromStrings("Bundle-Version", "2.0.0"),
		},
	}
	require.NoError(t, tx.PrepareChunks(data))
	return tx
}

func TestTransactionSignSetsIdFromDigest(t *testing.T) {
	tx := testTransaction(t, []byte("some payload"))
	require.NoError(t, tx.Sign(testSigner(t)))

	digest := tx.SignatureData()
	id := sha256.Sum256(digest[:])
	assert.Equal(t, id[:], tx.ID.Bytes())
	assert.Len(t, tx.Signature.Bytes(), 512)
	assert.Len(t, tx.Owner.Bytes(), 512)
}

func TestTransactionVerifySignature(t *testing.T) {
	tx := testTransaction(t, []byte("some payload"))
	require.NoError(t, tx.Sign(testSigner(t)))
	assert.NoError(t, tx.VerifySignature())

	tx.Reward = arweave.BigIntFromUint64(9999)
	assert.Error(t, tx.VerifySignature())
}

func TestTransactionJSONShape(t *testing.T) {
	tx := testTransaction(t, []byte("abc"))
	require.NoError(t, tx.Sign(testSigner(t)))
	tx.Data = arweave.Base64String("abc")

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Numeric fields are decimal strings, binary fields base64url
	assert.Equal(t, float64(2), decoded["format"])
	assert.Equal(t, "0", decoded["quantity"])
	assert.Equal(t, "1234", decoded["reward"])
	assert.Equal(t, "3", decoded["data_size"])
	assert.Equal(t, "YWJj", decoded["data"])
	assert.NotContains(t, decoded, "chunks")
}

func TestTransactionGetChunk(t *testing.T) {
	data := make([]byte, 600*1024)
	for i := range data {
		data[i] = byte(i % 251)
	}

	tx := testTransaction(t, data)
	require.NoError(t, tx.Sign(testSigner(t)))

	for i := range tx.Chunks.Chunks {
		chunk, err := tx.GetChunk(i, data)
		require.NoError(t, err)

		assert.Equal(t, tx.DataRoot, chunk.DataRoot)
		assert.Equal(t, tx.Chunks.Proofs[i].Proof, chunk.DataPath.Bytes())

		bounds := tx.Chunks.Chunks[i]
		assert.Equal(t, data[bounds.MinByteRange:bounds.MaxByteRange], chunk.Chunk.Bytes())
	}

	_, err := tx.GetChunk(len(tx.Chunks.Chunks), data)
	assert.Error(t, err)
}

func TestAttachSignatureRecomputesIdWithOwner(t *testing.T) {
	tx := testTransaction(t, []byte("payload"))

	signer := testSigner(t)
	tx.AttachSignature(signer.Owner(), make([]byte, 512))

	digest := tx.SignatureData()
	id := sha256.Sum256(digest[:])
	assert.Equal(t, id[:], tx.ID.Bytes())
	assert.Equal(t, signer.Owner(), tx.Owner)
}
