package bundlr

import (
	"crypto/rsa"
	"math/big"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

func LongTo8ByteArray(long int) []byte {
	// we want to represent the input as a 8-bytes array
	byteArray := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	for i := 0; i < len(byteArray); i++ {
		byt := long & 0xff
		byteArray[i] = byte(byt)
		long = (long - byt) / 256
	}
	return byteArray
}

func LongTo32ByteArray(long int) []byte {
	out := make([]byte, 32)
	copy(out, LongTo8ByteArray(long))
	return out
}

func ShortTo2ByteArray(long int) []byte {
	byteArray := []byte{0, 0}
	for i := 0; i < len(byteArray); i++ {
		byt := long & 0xff
		byteArray[i] = byte(byt)
		long = (long - byt) / 256
	}
	return byteArray
}

func ownerPublicKey(owner arweave.Base64String) *rsa.PublicKey {
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes([]byte(owner)),
		E: 65537, // "AQAB"
	}
}
