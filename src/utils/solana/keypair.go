package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"os"

	"github.com/mr-tron/base58"
)

// Keypair in the solana-cli file format, a JSON array of 64 bytes.
type Keypair struct {
	PrivateKey ed25519.PrivateKey
}

func KeypairFromPath(path string) (self *Keypair, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	// The file is a plain JSON array of numbers
	var raw []int
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return
	}
	if len(raw) != ed25519.PrivateKeySize {
		err = errors.New("solana keypair file must contain 64 bytes")
		return
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, b := range raw {
		if b < 0 || b > 255 {
			err = errors.New("solana keypair file must contain bytes")
			return nil, err
		}
		key[i] = byte(b)
	}

	self = &Keypair{PrivateKey: key}
	return
}

// Base58 public key, the payer address.
func (self *Keypair) Pubkey() string {
	return base58.Encode(self.PrivateKey.Public().(ed25519.PublicKey))
}

// Sign is used to authorize the payment the co-signer builds.
func (self *Keypair) Sign(message []byte) string {
	return base58.Encode(ed25519.Sign(self.PrivateKey, message))
}
