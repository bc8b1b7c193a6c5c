package bundlr

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/tool"
)

// ANS-104 data item, Arweave signature type only.
// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md
type BundleItem struct {
	SignatureType SignatureType        `json:"signature_type"`
	Signature     arweave.Base64String `json:"signature"`
	Owner         arweave.Base64String `json:"owner"`
	Target        arweave.Base64String `json:"target"` // optional, if present must be 32 bytes
	Anchor        arweave.Base64String `json:"anchor"` // optional, if present must be 32 bytes
	Tags          Tags                 `json:"tags"`
	Data          arweave.Base64String `json:"data"`
	Id            arweave.Base64String `json:"id"`

	// Not in the standard, used internally
	tagsBytes []byte
}

const ARWEAVE_SIGNATURE_LENGTH = 512
const ARWEAVE_OWNER_LENGTH = 512

func (self *BundleItem) ensureTagsSerialized() (err error) {
	if len(self.tagsBytes) != 0 || len(self.Tags) == 0 {
		return nil
	}
	self.tagsBytes, err = self.Tags.Marshal()
	if err != nil {
		return err
	}
	return nil
}

// Size of the serialized form.
func (self *BundleItem) Size() (out int) {
	out = 2 + ARWEAVE_SIGNATURE_LENGTH + ARWEAVE_OWNER_LENGTH + 1 + 1 + 16 + len(self.Data)
	if len(self.Target) > 0 {
		out += len(self.Target)
	}
	if len(self.Anchor) > 0 {
		out += len(self.Anchor)
	}

	err := self.ensureTagsSerialized()
	if err != nil {
		return -1
	}

	out += len(self.tagsBytes)

	return
}

// Terms hashed into the digest the signature commits to.
func (self *BundleItem) signatureData() ([48]byte, error) {
	err := self.ensureTagsSerialized()
	if err != nil {
		return [48]byte{}, err
	}

	values := []any{
		"dataitem",
		"1",
		self.SignatureType.Bytes(),
		self.Owner,
		self.Target,
		self.Anchor,
		self.tagsBytes,
		self.Data,
	}

	return arweave.DeepHash(values), nil
}

func (self *BundleItem) sign(signer *ArweaveSigner) (id, signature []byte, err error) {
	deepHash, err := self.signatureData()
	if err != nil {
		return
	}

	// Compute the signature
	signature, err = signer.Sign(deepHash[:])
	if err != nil {
		return
	}

	// Bundle item id
	idArray := sha256.Sum256(signature)
	id = idArray[:]

	return
}

// Reader signs the item if needed and returns its serialized form.
func (self *BundleItem) Reader(signer *ArweaveSigner) (out *bytes.Buffer, err error) {
	// Preallocate the item's size, at least 4kB. Buffer will grow if needed anyway.
	initSize := tool.Max(4096, self.Size())
	out = bytes.NewBuffer(make([]byte, 0, initSize))

	err = self.Encode(signer, out)
	return
}

func (self *BundleItem) Encode(signer *ArweaveSigner, out *bytes.Buffer) (err error) {
	// Tags
	err = self.ensureTagsSerialized()
	if err != nil {
		return
	}

	// Crypto
	if len(self.Owner) == 0 && len(self.Signature) == 0 && len(self.Id) == 0 {
		if signer == nil {
			err = ErrSignerNotSpecified
			return
		}
		self.SignatureType = SignatureTypeArweave
		self.Owner = signer.Owner()

		// Signs bundle item
		self.Id, self.Signature, err = self.sign(signer)
		if err != nil {
			return
		}
	}

	// Serialization
	out.Write(ShortTo2ByteArray(int(self.SignatureType)))
	out.Write(self.Signature)
	out.Write(self.Owner)

	// Optional target
	if len(self.Target) == 0 {
		out.WriteByte(0)
	} else {
		out.WriteByte(1)
		out.Write(self.Target)
	}

	// Optional anchor
	if len(self.Anchor) == 0 {
		out.WriteByte(0)
	} else {
		out.WriteByte(1)
		out.Write(self.Anchor)
	}

	// Rest
	out.Write(LongTo8ByteArray(len(self.Tags)))
	out.Write(LongTo8ByteArray(len(self.tagsBytes)))
	out.Write(self.tagsBytes)
	out.Write(self.Data)

	return
}

func (self *BundleItem) Unmarshal(buf []byte) (err error) {
	reader := bytes.NewReader(buf)
	return self.UnmarshalFromReader(reader)
}

// Reverse operation of Reader
func (self *BundleItem) UnmarshalFromReader(reader io.Reader) (err error) {
	// Signature type
	signatureType := make([]byte, 2)
	_, err = io.ReadFull(reader, signatureType)
	if err != nil {
		err = ErrNotEnoughBytesForSignatureType
		return
	}
	self.SignatureType = SignatureType(binary.LittleEndian.Uint16(signatureType))

	if self.SignatureType != SignatureTypeArweave {
		err = ErrUnsupportedSignatureType
		return
	}

	// Signature
	self.Signature = make([]byte, ARWEAVE_SIGNATURE_LENGTH)
	_, err = io.ReadFull(reader, self.Signature)
	if err != nil {
		err = ErrNotEnoughBytesForSignature
		return
	}

	// Owner - the public key modulus
	self.Owner = make([]byte, ARWEAVE_OWNER_LENGTH)
	_, err = io.ReadFull(reader, self.Owner)
	if err != nil {
		err = ErrNotEnoughBytesForOwner
		return
	}

	// Target (it's optional)
	flag := make([]byte, 1)
	_, err = io.ReadFull(reader, flag)
	if err != nil {
		err = ErrNotEnoughBytesForTargetFlag
		return
	}

	if flag[0] == 0 {
		self.Target = []byte{}
	} else {
		self.Target = make([]byte, 32)
		_, err = io.ReadFull(reader, self.Target)
		if err != nil {
			err = ErrNotEnoughBytesForTarget
			return
		}
	}

	// Anchor (it's optional)
	_, err = io.ReadFull(reader, flag)
	if err != nil {
		err = ErrNotEnoughBytesForAnchorFlag
		return
	}

	if flag[0] == 0 {
		self.Anchor = []byte{}
	} else {
		self.Anchor = make([]byte, 32)
		_, err = io.ReadFull(reader, self.Anchor)
		if err != nil {
			err = ErrNotEnoughBytesForAnchor
			return
		}
	}

	// Length of the tags slice
	numTagsBuffer := make([]byte, 8)
	_, err = io.ReadFull(reader, numTagsBuffer)
	if err != nil {
		err = ErrNotEnoughBytesForNumberOfTags
		return
	}
	numTags := int(binary.LittleEndian.Uint64(numTagsBuffer))

	// Size of encoded tags
	numTagsBytesBuffer := make([]byte, 8)
	_, err = io.ReadFull(reader, numTagsBytesBuffer)
	if err != nil {
		err = ErrNotEnoughBytesForNumberOfTagBytes
		return
	}
	numTagsBytes := int(binary.LittleEndian.Uint64(numTagsBytesBuffer))

	// Tags
	self.Tags = make(Tags, 0, numTags)
	if numTags > 0 {
		self.tagsBytes = make([]byte, numTagsBytes)
		_, err = io.ReadFull(reader, self.tagsBytes)
		if err != nil {
			err = ErrNotEnoughBytesForTags
			return
		}

		err = self.Tags.Unmarshal(self.tagsBytes)
		if err != nil {
			return
		}
	}

	// The rest is just data
	var data bytes.Buffer
	_, err = data.ReadFrom(reader)
	if err != nil {
		return
	}
	self.Data = data.Bytes()

	return
}

// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md#21-verifying-a-dataitem
func (self *BundleItem) Verify() (err error) {
	idArray := sha256.Sum256(self.Signature)
	if !bytes.Equal(idArray[:], self.Id) {
		err = ErrVerifyIdSignatureMismatch
		return
	}

	// with this lib an anchor has to be 0 or 32 bytes
	if len(self.Anchor) != 0 && len(self.Anchor) != 32 {
		err = ErrVerifyBadAnchorLength
		return
	}

	if len(self.Target) != 0 && len(self.Target) != 32 {
		err = ErrVerifyBadTargetLength
		return
	}

	// Tags
	if len(self.Tags) > 128 {
		err = ErrVerifyTooManyTags
		return
	}

	for _, tag := range self.Tags {
		if len(tag.Name) == 0 {
			err = ErrVerifyEmptyTagName
			return
		}
		if len(tag.Name) > 1024 {
			err = ErrVerifyTooLongTagName
			return
		}
		if len(tag.Value) == 0 {
			err = ErrVerifyEmptyTagValue
			return
		}
		if len(tag.Value) > 3072 {
			err = ErrVerifyTooLongTagValue
			return
		}
	}

	// Verify signature
	return self.VerifySignature()
}

func (self *BundleItem) VerifySignature() (err error) {
	deepHash, err := self.signatureData()
	if err != nil {
		return
	}

	return Verify(self.Owner, deepHash[:], self.Signature)
}
