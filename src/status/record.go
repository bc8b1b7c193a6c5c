package status

import (
	"time"

	"github.com/CalebEverett/arloader/src/utils/arweave"
	"github.com/CalebEverett/arloader/src/utils/solana"
)

// Transaction status on the network, from Submitted to Confirmed.
type Code string

const (
	CodeSubmitted Code = "Submitted"
	CodePending   Code = "Pending"
	CodeConfirmed Code = "Confirmed"
	CodeNotFound  Code = "NotFound"
)

func ParseCode(s string) (Code, bool) {
	switch Code(s) {
	case CodeSubmitted, CodePending, CodeConfirmed, CodeNotFound:
		return Code(s), true
	}
	return "", false
}

// One data item inside an uploaded bundle.
type FileEntry struct {
	Id          arweave.Base64String `json:"id"`
	ContentType string               `json:"content_type,omitempty"`
}

// Record tracks one bundle transaction. Persisted as <id>.json in the
// status directory, created before the transaction is posted.
type Record struct {
	Id            arweave.Base64String `json:"id"`
	Status        Code                 `json:"status"`
	FilePaths     map[string]FileEntry `json:"file_paths"`
	NumberOfFiles uint64               `json:"number_of_files"`
	DataSize      uint64               `json:"data_size"`
	CreatedAt     time.Time            `json:"created_at"`
	LastModified  time.Time            `json:"last_modified"`
	Reward        uint64               `json:"reward"`

	BlockHeight           uint64               `json:"block_height,omitempty"`
	BlockIndepHash        arweave.Base64String `json:"block_indep_hash,omitempty"`
	NumberOfConfirmations uint64               `json:"number_of_confirmations"`

	SolSig *solana.SigResponse `json:"sol_sig,omitempty"`
}

func NewRecord(id arweave.Base64String, reward uint64, dataSize uint64) *Record {
	now := time.Now().UTC()
	return &Record{
		Id:           id,
		Status:       CodeSubmitted,
		FilePaths:    make(map[string]FileEntry),
		DataSize:     dataSize,
		CreatedAt:    now,
		LastModified: now,
		Reward:       reward,
	}
}

// Confirmed with at least the required number of confirmations.
func (self *Record) IsPermanent(requiredConfirms uint64) bool {
	return self.Status == CodeConfirmed && self.NumberOfConfirmations >= requiredConfirms
}

// ApplyTxStatus folds a gateway response into the record. Confirmation
// counts never go down for the same id.
func (self *Record) ApplyTxStatus(code Code, raw *arweave.TxStatus) {
	self.Status = code
	self.LastModified = time.Now().UTC()

	if raw == nil {
		return
	}

	self.BlockHeight = raw.BlockHeight
	if hash, err := arweave.FromBase64String(raw.BlockIndepHash); err == nil {
		self.BlockIndepHash = hash
	}
	if raw.NumberOfConfirmations > self.NumberOfConfirmations {
		self.NumberOfConfirmations = raw.NumberOfConfirmations
	}
}
