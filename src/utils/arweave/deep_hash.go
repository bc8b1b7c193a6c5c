package arweave

import (
	"crypto/sha512"
	"strconv"
)

// Recursive tagged SHA-384 over lists and blobs, per
// https://github.com/ArweaveTeam/arweave-js/blob/master/src/common/lib/deepHash.ts
//
// Used to derive the digests that get signed for transactions and data
// items.
func DeepHash(data []any) [48]byte {
	tag := append([]byte("list"), []byte(strconv.Itoa(len(data)))...)
	return deepHashChunks(data, sha512.Sum384(tag))
}

func deepHashChunks(chunks []any, acc [48]byte) [48]byte {
	if len(chunks) < 1 {
		return acc
	}

	hashPair := make([]byte, 0, 96)
	hashPair = append(hashPair, acc[:]...)

	chunkHash := deepHashItem(chunks[0])
	hashPair = append(hashPair, chunkHash[:]...)

	newAcc := sha512.Sum384(hashPair)
	return deepHashChunks(chunks[1:], newAcc)
}

func deepHashItem(item any) [48]byte {
	switch x := item.(type) {
	case []any:
		return DeepHash(x)
	case []Base64String:
		list := make([]any, len(x))
		for i, v := range x {
			list[i] = v
		}
		return DeepHash(list)
	default:
		return deepHashBlob(toBlob(item))
	}
}

func deepHashBlob(blob []byte) [48]byte {
	tag := append([]byte("blob"), []byte(strconv.Itoa(len(blob)))...)

	tagHashed := sha512.Sum384(tag)
	blobHashed := sha512.Sum384(blob)

	tagged := make([]byte, 0, 96)
	tagged = append(tagged, tagHashed[:]...)
	tagged = append(tagged, blobHashed[:]...)

	return sha512.Sum384(tagged)
}

func toBlob(item any) []byte {
	switch x := item.(type) {
	case string:
		return []byte(x)
	case []byte:
		return x
	case Base64String:
		return []byte(x)
	case BigInt:
		return []byte(x.String())
	case int:
		return []byte(strconv.Itoa(x))
	case int64:
		return []byte(strconv.FormatInt(x, 10))
	case uint64:
		return []byte(strconv.FormatUint(x, 10))
	default:
		panic("unsupported deep hash type")
	}
}
