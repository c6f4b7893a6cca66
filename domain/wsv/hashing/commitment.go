package hashing

import (
	"github.com/kaspanet/go-muhash"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"google.golang.org/protobuf/encoding/protowire"
)

// StateCommitment is an order-independent commitment to a set of
// staged key/value changes
type StateCommitment struct {
	muHash *muhash.MuHash
}

// NewStateCommitment returns a commitment to the empty set
func NewStateCommitment() *StateCommitment {
	return &StateCommitment{muHash: muhash.NewMuHash()}
}

// AddPut adds the staging of key=value to the commitment
func (c *StateCommitment) AddPut(key, value []byte) {
	c.muHash.Add(encodeChange(key, value, false))
}

// AddDelete adds the staged deletion of key to the commitment
func (c *StateCommitment) AddDelete(key []byte) {
	c.muHash.Add(encodeChange(key, nil, true))
}

// RemovePut removes a previously added put from the commitment
func (c *StateCommitment) RemovePut(key, value []byte) {
	c.muHash.Remove(encodeChange(key, value, false))
}

// Finalize returns the hash of the commitment
func (c *StateCommitment) Finalize() model.Hash {
	finalized := c.muHash.Finalize()
	var hash model.Hash
	copy(hash[:], finalized[:])
	return hash
}

func encodeChange(key, value []byte, isDelete bool) []byte {
	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, key)
	if isDelete {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		return protowire.AppendVarint(b, 1)
	}
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	return protowire.AppendBytes(b, value)
}
