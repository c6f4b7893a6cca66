package hashing

import (
	"encoding/binary"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
)

// TransactionID returns the ID of transaction: the hash of its
// canonical payload, signatures excluded
func TransactionID(transaction *model.Transaction) model.TransactionID {
	writer := NewTransactionIDWriter()
	writer.InfallibleWrite(serialization.TransactionPayloadBytes(transaction))
	return model.TransactionID(writer.Finalize())
}

// ProposalHash returns the hash of the height of proposal and of the
// IDs of its transactions, in order
func ProposalHash(proposal *model.Proposal) model.Hash {
	writer := NewProposalHashWriter()
	var height [8]byte
	binary.LittleEndian.PutUint64(height[:], proposal.Height)
	writer.InfallibleWrite(height[:])
	for _, transaction := range proposal.Transactions {
		transactionID := TransactionID(transaction)
		writer.InfallibleWrite(transactionID[:])
	}
	return writer.Finalize()
}

// BlockHash returns the hash of the header fields of block and of the
// IDs of its transactions, in order
func BlockHash(block *model.Block) model.Hash {
	writer := NewBlockHashWriter()
	var header [24]byte
	binary.LittleEndian.PutUint64(header[:8], block.Height)
	binary.LittleEndian.PutUint64(header[8:16], uint64(block.CreatedTime))
	binary.LittleEndian.PutUint64(header[16:], uint64(len(block.PrevHash)))
	writer.InfallibleWrite(header[:])
	writer.InfallibleWrite(block.PrevHash)
	for _, transaction := range block.Transactions {
		transactionID := TransactionID(transaction)
		writer.InfallibleWrite(transactionID[:])
	}
	return writer.Finalize()
}
