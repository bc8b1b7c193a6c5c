package arweave

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"github.com/CalebEverett/arloader/src/utils/logger"
)

const (
	// Maximum chunk size accepted by the chunk validator
	MaxChunkSize = 256 * 1024

	// Naive final chunks at or below this size get rebalanced with the
	// chunk before them
	MinChunkSize = 32 * 1024

	HashSize = 32
	NoteSize = 32

	// Node ids are SHA-384 digests
	IdSize = 48

	branchProofSize = IdSize*2 + NoteSize
	leafProofSize   = HashSize + NoteSize
)

// Single struct used for original data chunks (leaves) and branch nodes.
type Node struct {
	ID           []byte
	DataHash     []byte
	MinByteRange uint64
	MaxByteRange uint64
	LeftChild    *Node
	RightChild   *Node
}

// Concatenated ids and offsets for the full path from the root down to one
// data chunk.
type Proof struct {
	Offset uint64
	Proof  []byte
}

// ChunkData splits data into chunks of MaxChunkSize. When the trailing
// chunk would come out at MinChunkSize or less, the final two chunks are
// rebalanced into two halves so no trivially small chunk is produced.
func ChunkData(data []byte) (chunks []Chunk, err error) {
	if len(data) == 0 {
		err = ErrEmptyData
		return
	}

	rest := data
	cursor := uint64(0)

	for len(rest) >= MaxChunkSize {
		chunkSize := uint64(MaxChunkSize)

		remainder := uint64(len(rest)) - MaxChunkSize
		if remainder > 0 && remainder <= MinChunkSize {
			// Rebalance the last two chunks
			chunkSize = (uint64(len(rest)) + 1) / 2
		}

		hash := sha256.Sum256(rest[:chunkSize])
		cursor += chunkSize
		chunks = append(chunks, Chunk{
			DataHash:     hash[:],
			MinByteRange: cursor - chunkSize,
			MaxByteRange: cursor,
		})
		rest = rest[chunkSize:]
	}

	if len(rest) > 0 {
		hash := sha256.Sum256(rest)
		chunks = append(chunks, Chunk{
			DataHash:     hash[:],
			MinByteRange: cursor,
			MaxByteRange: cursor + uint64(len(rest)),
		})
	}

	return
}

func hashAllSHA384(messages ...[]byte) []byte {
	buf := make([]byte, 0, len(messages)*48)
	for _, message := range messages {
		hashed := sha512.Sum384(message)
		buf = append(buf, hashed[:]...)
	}
	out := sha512.Sum384(buf)
	return out[:]
}

// GenerateLeaves computes the leaf node for every chunk. Leaf id is
// SHA-384(SHA-384(data_hash) || SHA-384(note(max_byte_range))).
func GenerateLeaves(chunks []Chunk) (leaves []*Node) {
	leaves = make([]*Node, len(chunks))
	for i, chunk := range chunks {
		leaves[i] = &Node{
			ID:           hashAllSHA384(chunk.DataHash, NoteBytes(chunk.MaxByteRange)),
			DataHash:     chunk.DataHash,
			MinByteRange: chunk.MinByteRange,
			MaxByteRange: chunk.MaxByteRange,
		}
	}
	return
}

func hashBranch(left, right *Node) *Node {
	return &Node{
		ID:           hashAllSHA384(left.ID, right.ID, NoteBytes(left.MaxByteRange)),
		MinByteRange: left.MaxByteRange,
		MaxByteRange: right.MaxByteRange,
		LeftChild:    left,
		RightChild:   right,
	}
}

// GenerateDataRoot builds the tree bottom-up, pairing adjacent nodes. An
// odd node at the end of a layer is promoted unchanged.
func GenerateDataRoot(leaves []*Node) (root *Node) {
	nodes := leaves
	for len(nodes) > 1 {
		layer := make([]*Node, 0, (len(nodes)+1)/2)
		for i := 0; i+1 < len(nodes); i += 2 {
			layer = append(layer, hashBranch(nodes[i], nodes[i+1]))
		}
		if len(nodes)%2 == 1 {
			layer = append(layer, nodes[len(nodes)-1])
		}
		nodes = layer
	}
	return nodes[0]
}

// ResolveProofs walks from the root down to every leaf, recording the
// child ids plus the pivot offset of each branch passed through.
func ResolveProofs(node *Node, prefix []byte) (proofs []*Proof) {
	if node.DataHash != nil {
		proof := make([]byte, 0, len(prefix)+leafProofSize)
		proof = append(proof, prefix...)
		proof = append(proof, node.DataHash...)
		proof = append(proof, NoteBytes(node.MaxByteRange)...)
		return []*Proof{{Offset: node.MaxByteRange - 1, Proof: proof}}
	}

	branch := make([]byte, 0, len(prefix)+branchProofSize)
	branch = append(branch, prefix...)
	branch = append(branch, node.LeftChild.ID...)
	branch = append(branch, node.RightChild.ID...)
	branch = append(branch, NoteBytes(node.LeftChild.MaxByteRange)...)

	proofs = append(proofs, ResolveProofs(node.LeftChild, branch)...)
	proofs = append(proofs, ResolveProofs(node.RightChild, branch)...)
	return
}

// GenerateTree chunks data and returns the chunk set with the data root
// and one proof per chunk. It panics if any proof fails to validate
// against the root.
func GenerateTree(data []byte) (out *Chunks, err error) {
	chunks, err := ChunkData(data)
	if err != nil {
		return
	}

	root := GenerateDataRoot(GenerateLeaves(chunks))

	out = &Chunks{
		DataRoot: root.ID,
		Chunks:   chunks,
		Proofs:   ResolveProofs(root, nil),
	}

	// Self-check: every proof has to validate against the root just built
	for i, proof := range out.Proofs {
		if checkErr := ValidateChunk(root.ID, chunks[i], *proof); checkErr != nil {
			logger.NewSublogger("merkle").WithError(checkErr).WithField("chunk", i).
				Panic("Merkle proof failed self-check")
		}
	}
	return
}

// ValidateChunk checks a chunk's proof against the data root.
func ValidateChunk(rootID []byte, chunk Chunk, proof Proof) error {
	if len(proof.Proof) < leafProofSize ||
		(len(proof.Proof)-leafProofSize)%branchProofSize != 0 {
		return ErrInvalidProof
	}

	expected := rootID
	branches := proof.Proof[:len(proof.Proof)-leafProofSize]
	leaf := proof.Proof[len(proof.Proof)-leafProofSize:]

	for off := 0; off < len(branches); off += branchProofSize {
		leftID := branches[off : off+IdSize]
		rightID := branches[off+IdSize : off+2*IdSize]
		note := branches[off+2*IdSize : off+branchProofSize]

		id := hashAllSHA384(leftID, rightID, note)
		if !bytes.Equal(id, expected) {
			return ErrInvalidProof
		}

		pivot := binary.BigEndian.Uint64(note[NoteSize-8:])
		if chunk.MaxByteRange > pivot {
			expected = rightID
		} else {
			expected = leftID
		}
	}

	dataHash := leaf[:HashSize]
	note := leaf[HashSize:]

	id := hashAllSHA384(dataHash, note)
	if !bytes.Equal(id, expected) || !bytes.Equal(dataHash, chunk.DataHash) {
		return ErrInvalidProof
	}

	return nil
}
