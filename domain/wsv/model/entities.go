package model

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// MaxRoleNameLength is the maximum length, in characters, of a role name
const MaxRoleNameLength = 45

// DefaultQuorum is the quorum of a newly created account
const DefaultQuorum = 1

// MaxQuorum is the largest quorum an account may require
const MaxQuorum = 128

// AccountID returns the id of the account with the given name inside the
// given domain
func AccountID(accountName, domainID string) string {
	return accountName + "@" + domainID
}

// AssetID returns the id of the asset with the given name inside the
// given domain
func AssetID(assetName, domainID string) string {
	return assetName + "#" + domainID
}

// Domain is a namespace of accounts and assets. Accounts created
// in a domain are appended its default role.
type Domain struct {
	DomainID    string
	DefaultRole string
}

// Clone returns a clone of Domain
func (domain *Domain) Clone() *Domain {
	if domain == nil {
		return nil
	}
	clone := *domain
	return &clone
}

// Equal returns whether domain equals to other
func (domain *Domain) Equal(other *Domain) bool {
	if domain == nil || other == nil {
		return domain == other
	}
	return *domain == *other
}

// Account is a ledger account
type Account struct {
	AccountID string
	DomainID  string
	Quorum    uint32
	Detail    AccountDetail
}

// Clone returns a clone of Account
func (account *Account) Clone() *Account {
	if account == nil {
		return nil
	}
	return &Account{
		AccountID: account.AccountID,
		DomainID:  account.DomainID,
		Quorum:    account.Quorum,
		Detail:    account.Detail.Clone(),
	}
}

// Equal returns whether account equals to other
func (account *Account) Equal(other *Account) bool {
	if account == nil || other == nil {
		return account == other
	}
	return account.AccountID == other.AccountID &&
		account.DomainID == other.DomainID &&
		account.Quorum == other.Quorum &&
		account.Detail.Equal(other.Detail)
}

// Peer is a member of the consensus peer registry
type Peer struct {
	Address   string
	PublicKey []byte
}

// Clone returns a clone of Peer
func (peer *Peer) Clone() *Peer {
	if peer == nil {
		return nil
	}
	publicKeyClone := make([]byte, len(peer.PublicKey))
	copy(publicKeyClone, peer.PublicKey)
	return &Peer{Address: peer.Address, PublicKey: publicKeyClone}
}

// Equal returns whether peer equals to other
func (peer *Peer) Equal(other *Peer) bool {
	if peer == nil || other == nil {
		return peer == other
	}
	return peer.Address == other.Address && bytes.Equal(peer.PublicKey, other.PublicKey)
}

func (peer *Peer) String() string {
	return fmt.Sprintf("%s (%s)", peer.Address, hex.EncodeToString(peer.PublicKey))
}

// Asset is a resource type accounts may hold
type Asset struct {
	AssetID   string
	DomainID  string
	Precision uint32
}

// Clone returns a clone of Asset
func (asset *Asset) Clone() *Asset {
	if asset == nil {
		return nil
	}
	clone := *asset
	return &clone
}

// Equal returns whether asset equals to other
func (asset *Asset) Equal(other *Asset) bool {
	if asset == nil || other == nil {
		return asset == other
	}
	return *asset == *other
}
