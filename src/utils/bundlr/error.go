package bundlr

import "errors"

var (
	ErrSignerNotSpecified                = errors.New("signer not specified")
	ErrBufferTooSmall                    = errors.New("buffer too small")
	ErrNotEnoughBytesForSignatureType    = errors.New("not enough bytes for the signature type")
	ErrNotEnoughBytesForSignature        = errors.New("not enough bytes for the signature")
	ErrNotEnoughBytesForOwner            = errors.New("not enough bytes for the owner")
	ErrNotEnoughBytesForTargetFlag       = errors.New("not enough bytes for the target flag")
	ErrNotEnoughBytesForTarget           = errors.New("not enough bytes for the target")
	ErrNotEnoughBytesForAnchorFlag       = errors.New("not enough bytes for the anchor flag")
	ErrNotEnoughBytesForAnchor           = errors.New("not enough bytes for the anchor")
	ErrNotEnoughBytesForNumberOfTags     = errors.New("not enough bytes for the number of tags")
	ErrNotEnoughBytesForNumberOfTagBytes = errors.New("not enough bytes for the number of tag bytes")
	ErrNotEnoughBytesForTags             = errors.New("not enough bytes for the tags")
	ErrUnsupportedSignatureType          = errors.New("unsupported signature type")
	ErrVerifyIdSignatureMismatch         = errors.New("id does not match the signature")
	ErrVerifyBadAnchorLength             = errors.New("anchor must be 32 bytes")
	ErrVerifyBadTargetLength             = errors.New("target must be 32 bytes")
	ErrVerifyTooManyTags                 = errors.New("too many tags")
	ErrVerifyEmptyTagName                = errors.New("empty tag name")
	ErrVerifyTooLongTagName              = errors.New("tag name too long")
	ErrVerifyEmptyTagValue               = errors.New("empty tag value")
	ErrVerifyTooLongTagValue             = errors.New("tag value too long")
	ErrBadBundleHeader                   = errors.New("malformed bundle header")
	ErrBundleItemTooLarge                = errors.New("data item exceeds the bundle size cap")
)
