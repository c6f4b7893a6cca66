package model

import (
	"encoding/hex"
)

// Hash is a 32 byte hash
type Hash [32]byte

// String returns the hex encoding of hash
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// TransactionID is the blake2b-256 hash of the canonical encoding of a
// transaction's payload
type TransactionID [32]byte

// String returns the hex encoding of id
func (id TransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// Signature is a signature over a transaction payload
type Signature struct {
	PublicKey []byte
	Signature []byte
}

// Transaction is a signed batch of commands created by one account.
// Quorum, when non-zero, raises the number of distinct signers the
// transaction requires above the quorum of its creator.
type Transaction struct {
	CreatorAccountID string
	CreatedTime      int64
	Quorum           uint32
	Commands         []Command
	Signatures       []*Signature
}

// SignerCount returns the number of distinct public keys that signed
// the transaction
func (transaction *Transaction) SignerCount() int {
	signers := make(map[string]struct{}, len(transaction.Signatures))
	for _, signature := range transaction.Signatures {
		signers[string(signature.PublicKey)] = struct{}{}
	}
	return len(signers)
}

// Proposal is an ordered batch of transactions supplied by consensus
type Proposal struct {
	Height       uint64
	CreatedTime  int64
	Transactions []*Transaction
}

// Block is a committed batch of transactions. The genesis block is the
// block of height 1.
type Block struct {
	Height       uint64
	PrevHash     []byte
	CreatedTime  int64
	Transactions []*Transaction
}

// GenesisHeight is the height of the genesis block
const GenesisHeight = 1

// RejectedTransaction is a transaction a stateful validation pass
// dropped, together with the reason it was dropped
type RejectedTransaction struct {
	Transaction   *Transaction
	TransactionID TransactionID
	Error         error
}
