package solana

import "github.com/CalebEverett/arloader/src/utils/arweave"

// Response of the payment co-signer. The Arweave signature and owner get
// attached to the transaction in place of the wallet's own, the Solana
// signature is recorded on the status for the payment audit trail.
type SigResponse struct {
	ArTxSig   arweave.Base64String `json:"ar_tx_sig"`
	ArTxId    arweave.Base64String `json:"ar_tx_id"`
	ArTxOwner arweave.Base64String `json:"ar_tx_owner"`
	SolTxSig  string               `json:"sol_tx_sig"`
	Lamports  uint64               `json:"lamports"`
}

// Body of POST /sign.
type SigRequest struct {
	// Deep hash digest of the transaction being paid for
	ArTxSigData arweave.Base64String `json:"ar_tx_sig_data"`

	// Payer's public key
	Payer string `json:"payer"`

	// Lamports offered for the reward
	Lamports uint64 `json:"lamports"`

	// Payer-signed authorization over the digest
	SolTx string `json:"sol_tx"`
}
