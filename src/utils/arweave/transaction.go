package arweave

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"
)

// Signing backend for transactions. The RSA wallet implementation lives in
// the bundlr package, the Solana co-signer satisfies it remotely.
type Signer interface {
	// Full 512-byte modulus, left padded
	Owner() Base64String

	// RSA-PSS over the 48-byte deep hash digest
	Sign(digest []byte) ([]byte, error)
}

// PrepareChunks computes the merkle tree for data and sets DataRoot and
// DataSize. Inline data is set separately by the caller.
func (self *Transaction) PrepareChunks(data []byte) (err error) {
	self.Chunks, err = GenerateTree(data)
	if err != nil {
		return
	}
	self.DataRoot = Base64String(self.Chunks.DataRoot)
	self.DataSize = BigIntFromUint64(uint64(len(data)))
	return
}

// Terms that get deep hashed for the signature.
func (self *Transaction) signableTerms() []any {
	var tags any
	if len(self.Tags) == 0 {
		tags = []byte{}
	} else {
		list := make([]any, len(self.Tags))
		for i, tag := range self.Tags {
			list[i] = []any{tag.Name, tag.Value}
		}
		tags = list
	}

	return []any{
		"2",
		self.Owner,
		self.Target,
		self.Quantity.String(),
		self.Reward.String(),
		self.LastTx,
		tags,
		self.DataSize.String(),
		self.DataRoot,
	}
}

// SignatureData returns the deep hash digest a signature commits to.
func (self *Transaction) SignatureData() [48]byte {
	return DeepHash(self.signableTerms())
}

// Sign sets Signature and ID. The id is the SHA-256 of the deep hash
// digest the signature was produced over.
func (self *Transaction) Sign(signer Signer) (err error) {
	self.Owner = signer.Owner()

	digest := self.SignatureData()
	signature, err := signer.Sign(digest[:])
	if err != nil {
		return
	}

	id := sha256.Sum256(digest[:])

	self.Signature = Base64String(signature)
	self.ID = Base64String(id[:])
	return
}

// AttachSignature is used when a remote co-signer produced the signature
// over a digest we computed.
func (self *Transaction) AttachSignature(owner Base64String, signature []byte) {
	self.Owner = owner

	digest := self.SignatureData()
	id := sha256.Sum256(digest[:])

	self.Signature = Base64String(signature)
	self.ID = Base64String(id[:])
}

// VerifySignature recomputes the digest, checks the id and validates the
// RSA-PSS signature against the owner modulus.
func (self *Transaction) VerifySignature() (err error) {
	if len(self.Signature) == 0 {
		return ErrUnsignedTx
	}

	digest := self.SignatureData()
	id := sha256.Sum256(digest[:])
	if !bytes.Equal(id[:], self.ID) {
		return ErrSignerNotBacking
	}

	hashed := sha256.Sum256(digest[:])

	ownerPublicKey := &rsa.PublicKey{
		N: new(big.Int).SetBytes(self.Owner),
		E: 65537, // "AQAB"
	}

	return rsa.VerifyPSS(ownerPublicKey, crypto.SHA256, hashed[:], self.Signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}

// WithoutData returns a shallow copy suitable for the /tx POST when the
// payload goes up through /chunk.
func (self *Transaction) WithoutData() (out Transaction) {
	out = *self
	out.Data = Base64String{}
	return
}

// GetChunk assembles the POST /chunk body for chunk i of data.
func (self *Transaction) GetChunk(i int, data []byte) (out *ChunkUpload, err error) {
	if self.Chunks == nil || i >= len(self.Chunks.Chunks) {
		err = ErrInvalidProof
		return
	}

	chunk := self.Chunks.Chunks[i]
	proof := self.Chunks.Proofs[i]

	out = &ChunkUpload{
		DataRoot: Base64String(self.Chunks.DataRoot),
		DataSize: self.DataSize,
		DataPath: Base64String(proof.Proof),
		Offset:   BigIntFromUint64(proof.Offset),
		Chunk:    Base64String(data[chunk.MinByteRange:chunk.MaxByteRange]),
	}
	return
}
