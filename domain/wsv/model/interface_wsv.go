package model

// WSVCommand is the mutation half of the world state view. Every
// operation either fully applies or returns an error leaving the state
// unchanged.
type WSVCommand interface {
	InsertRole(roleName string) error
	InsertRolePermissions(roleName string, permissions []string) error
	InsertDomain(domain *Domain) error
	InsertAccount(account *Account) error
	UpdateAccount(account *Account) error
	SetAccountKV(accountID, writerAccountID, key, value string) error
	InsertAccountRole(accountID, roleName string) error
	DeleteAccountRole(accountID, roleName string) error
	InsertAccountGrantablePermission(permitteeAccountID, accountID, permission string) error
	DeleteAccountGrantablePermission(permitteeAccountID, accountID, permission string) error
	InsertPeer(peer *Peer) error
	DeletePeer(peer *Peer) error
	InsertAsset(asset *Asset) error
}

// WSVQuery is the read half of the world state view. Queries never
// fail: a false ok means the value is absent or could not be read.
type WSVQuery interface {
	Roles() ([]string, bool)
	RolePermissions(roleName string) ([]string, bool)
	Domain(domainID string) (*Domain, bool)
	Account(accountID string) (*Account, bool)
	AccountDetail(accountID string) (AccountDetail, bool)
	AccountRoles(accountID string) ([]string, bool)
	AccountPermissions(accountID string) (map[string]struct{}, bool)
	HasAccountGrantablePermission(permitteeAccountID, accountID, permission string) bool
	Peers() ([]*Peer, bool)
	Asset(assetID string) (*Asset, bool)
}
