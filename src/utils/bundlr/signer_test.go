package bundlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestSigner(t *testing.T) *ArweaveSigner {
	signer, err := FromKeypairPath("testdata/arweave-key.json")
	require.NoError(t, err)
	return signer
}

func TestSignerOwner(t *testing.T) {
	signer := loadTestSigner(t)
	assert.Len(t, signer.Owner().Bytes(), ARWEAVE_OWNER_LENGTH)
}

func TestSignerAddress(t *testing.T) {
	signer := loadTestSigner(t)
	assert.Equal(t, "jA6UzKJ1cIvL2vUIct7Qf90QhC5b1UttvwknaGGBtjI", signer.Address().String())
	assert.Len(t, signer.Address().Bytes(), 32)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := loadTestSigner(t)

	digest := make([]byte, 48)
	for i := range digest {
		digest[i] = byte(i)
	}

	signature, err := signer.Sign(digest)
	require.NoError(t, err)
	assert.Len(t, signature, ARWEAVE_SIGNATURE_LENGTH)

	assert.NoError(t, Verify(signer.Owner(), digest, signature))

	digest[0] ^= 0xff
	assert.Error(t, Verify(signer.Owner(), digest, signature))
}

func TestSignaturesAreSalted(t *testing.T) {
	signer := loadTestSigner(t)
	digest := make([]byte, 48)

	first, err := signer.Sign(digest)
	require.NoError(t, err)
	second, err := signer.Sign(digest)
	require.NoError(t, err)

	// RSA-PSS salts, so the same digest never signs twice the same
	assert.NotEqual(t, first, second)
}
