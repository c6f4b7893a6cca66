package hashing

import (
	"hash"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashWriter is used to incrementally hash data without concatenating
// all of the data to a single buffer. The used hash function is blake2b,
// keyed with a per-purpose domain so hashes of different kinds never
// collide.
type HashWriter struct {
	hash.Hash
}

const (
	transactionIDDomain = "TransactionID"
	proposalHashDomain  = "ProposalHash"
	blockHashDomain     = "BlockHash"
)

func newHashWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// NewTransactionIDWriter returns a new HashWriter used for transaction IDs
func NewTransactionIDWriter() HashWriter {
	return newHashWriter(transactionIDDomain)
}

// NewProposalHashWriter returns a new HashWriter used for proposal hashes
func NewProposalHashWriter() HashWriter {
	return newHashWriter(proposalHashDomain)
}

// NewBlockHashWriter returns a new HashWriter used for block hashes
func NewBlockHashWriter() HashWriter {
	return newHashWriter(blockHashDomain)
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() model.Hash {
	var sum model.Hash
	copy(sum[:], h.Sum(sum[:0]))
	return sum
}
