package bundlr

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"os"

	"github.com/lestrrat-go/jwx/jwk"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

// RSA-4096 wallet loaded from a JWK file. Implements arweave.Signer.
type ArweaveSigner struct {
	PrivateKey *rsa.PrivateKey

	owner arweave.Base64String
}

func NewArweaveSigner(privateKeyJWK string) (self *ArweaveSigner, err error) {
	self = new(ArweaveSigner)
	set, err := jwk.Parse([]byte(privateKeyJWK))
	if err != nil {
		return
	}
	if set.Len() != 1 {
		err = errors.New("too many keys in signer's wallet")
		return
	}

	key, ok := set.Get(0)
	if !ok {
		err = errors.New("cannot access key in JWK")
		return
	}

	var rawkey interface{}
	err = key.Raw(&rawkey)
	if err != nil {
		return
	}

	self.PrivateKey, ok = rawkey.(*rsa.PrivateKey)
	if !ok {
		err = errors.New("not an RSA private key")
		return
	}

	// Left-pad the modulus to the full owner length
	modulus := self.PrivateKey.PublicKey.N.Bytes()
	self.owner = make(arweave.Base64String, ARWEAVE_OWNER_LENGTH)
	copy(self.owner[ARWEAVE_OWNER_LENGTH-len(modulus):], modulus)

	return
}

func FromKeypairPath(path string) (self *ArweaveSigner, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	return NewArweaveSigner(string(data))
}

func (self *ArweaveSigner) Owner() arweave.Base64String {
	return self.owner
}

// SHA-256 of the owner modulus, displayed as base64url.
func (self *ArweaveSigner) Address() arweave.Base64String {
	address := sha256.Sum256(self.owner)
	return arweave.Base64String(address[:])
}

// Sign produces an RSA-PSS signature over the 48-byte deep hash digest.
// The digest is hashed with SHA-256 before signing, salt length is 32.
func (self *ArweaveSigner) Sign(digest []byte) (signature []byte, err error) {
	hashed := sha256.Sum256(digest)
	return rsa.SignPSS(rand.Reader, self.PrivateKey, crypto.SHA256, hashed[:], &rsa.PSSOptions{
		SaltLength: 32,
		Hash:       crypto.SHA256,
	})
}

// Verify checks signature over the deep hash digest against owner.
func Verify(owner arweave.Base64String, digest []byte, signature []byte) error {
	hashed := sha256.Sum256(digest)
	return rsa.VerifyPSS(ownerPublicKey(owner), crypto.SHA256, hashed[:], signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}
