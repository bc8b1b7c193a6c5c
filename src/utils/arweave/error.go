package arweave

import "errors"

var (
	ErrFailedToParse    = errors.New("failed to parse response")
	ErrBadRequest       = errors.New("gateway rejected request")
	ErrNotFound         = errors.New("data not found")
	ErrPending          = errors.New("tx is pending")
	ErrPayloadTooLarge  = errors.New("payload too large for inline post")
	ErrEmptyData        = errors.New("cannot chunk empty data")
	ErrInvalidProof     = errors.New("chunk proof does not validate against data root")
	ErrUnsignedTx       = errors.New("transaction is not signed")
	ErrSignerNotBacking = errors.New("signer does not match transaction owner")
)
