package arweave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternData(n int, multiplier int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i * multiplier) % 256)
	}
	return out
}

func TestChunkDataRejectsEmpty(t *testing.T) {
	_, err := ChunkData(nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestChunkRoundTrip(t *testing.T) {
	for _, n := range []int{1, 3546, MaxChunkSize, MaxChunkSize + 1, MaxChunkSize + MinChunkSize, 1024 * 1024, 1024*1024 + 5} {
		data := patternData(n, 1)
		chunks, err := ChunkData(data)
		require.NoError(t, err)

		// Contiguous ranges covering the stream exactly
		var cursor uint64
		for _, chunk := range chunks {
			assert.Equal(t, cursor, chunk.MinByteRange)
			assert.Greater(t, chunk.MaxByteRange, chunk.MinByteRange)
			assert.LessOrEqual(t, chunk.MaxByteRange-chunk.MinByteRange, uint64(MaxChunkSize))
			cursor = chunk.MaxByteRange
		}
		assert.Equal(t, uint64(n), cursor)
	}
}

func TestTailRebalance(t *testing.T) {
	// 256 KiB + 20 KiB: the naive tail would be 20 KiB, the last two
	// chunks get rebalanced into equal halves instead
	n := MaxChunkSize + 20*1024
	chunks, err := ChunkData(patternData(n, 13))
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	first := chunks[0].MaxByteRange - chunks[0].MinByteRange
	second := chunks[1].MaxByteRange - chunks[1].MinByteRange
	assert.LessOrEqual(t, max(first, second)-min(first, second), uint64(1))
	assert.Equal(t, uint64(141312), first)
}

func TestDataRootGoldens(t *testing.T) {
	for _, tc := range []struct {
		n          int
		multiplier int
		chunks     int
		root       string
	}{
		{1024 * 1024, 1, 4, "ab060143ec4a2a204fab3ad0830cffae014e9b0a96fd537c33078d6aae76eb8aa4eb8542a202102786864373e6b9c69f"},
		{3546, 7, 1, "c04ca43de0418c2ee28f05103c38931fbe08cf3804a797fc44080b68c0b1812ca22d4b08d8bce58a2b3726fe4e0ce598"},
		{MaxChunkSize + 20*1024, 13, 2, "bad40d9583ebe8983255957b8066e526eba565ee68a28630949b0acb3354bb5853e99abf1e049e7d9a6fb60a443e2ce9"},
	} {
		out, err := GenerateTree(patternData(tc.n, tc.multiplier))
		require.NoError(t, err)
		assert.Len(t, out.Chunks, tc.chunks)
		assert.Equal(t, fromHex(t, tc.root), out.DataRoot)
	}
}

func TestProofSoundness(t *testing.T) {
	for _, n := range []int{1, 3546, MaxChunkSize, MaxChunkSize + 1, 1024 * 1024, 1024*1024 + MinChunkSize} {
		out, err := GenerateTree(patternData(n, 3))
		require.NoError(t, err)
		require.Len(t, out.Proofs, len(out.Chunks))

		for i, chunk := range out.Chunks {
			assert.NoError(t, ValidateChunk(out.DataRoot, chunk, *out.Proofs[i]), "chunk %d of %d bytes", i, n)
		}
	}
}

func TestProofRejectsWrongRoot(t *testing.T) {
	out, err := GenerateTree(patternData(1024*1024, 3))
	require.NoError(t, err)

	badRoot := append([]byte{}, out.DataRoot...)
	badRoot[0] ^= 0xff

	assert.ErrorIs(t, ValidateChunk(badRoot, out.Chunks[0], *out.Proofs[0]), ErrInvalidProof)
}

func TestProofRejectsTamperedProof(t *testing.T) {
	out, err := GenerateTree(patternData(1024*1024, 3))
	require.NoError(t, err)

	tampered := Proof{
		Offset: out.Proofs[1].Offset,
		Proof:  append([]byte{}, out.Proofs[1].Proof...),
	}
	tampered.Proof[5] ^= 0x01

	assert.ErrorIs(t, ValidateChunk(out.DataRoot, out.Chunks[1], tampered), ErrInvalidProof)
}

func TestOddLeafPromotion(t *testing.T) {
	// 3 chunks: last leaf is promoted unchanged, proofs still validate
	out, err := GenerateTree(patternData(3*MaxChunkSize, 5))
	require.NoError(t, err)
	require.Len(t, out.Chunks, 3)

	for i, chunk := range out.Chunks {
		assert.NoError(t, ValidateChunk(out.DataRoot, chunk, *out.Proofs[i]))
	}
}
