package model

// Command names, as they appear in block JSON and in errors
const (
	CreateRoleName            = "CreateRole"
	AppendRolePermissionsName = "AppendRolePermissions"
	AppendRoleName            = "AppendRole"
	DetachRoleName            = "DetachRole"
	CreateDomainName          = "CreateDomain"
	CreateAccountName         = "CreateAccount"
	SetAccountDetailName      = "SetAccountDetail"
	GrantPermissionName       = "GrantPermission"
	RevokePermissionName      = "RevokePermission"
	SetQuorumName             = "SetQuorum"
	AddPeerName               = "AddPeer"
	RemovePeerName            = "RemovePeer"
	CreateAssetName           = "CreateAsset"
)

// Command is a single change of the world state. The set of commands is
// closed: only the types of this package implement it.
type Command interface {
	// Name returns the name of the command kind
	Name() string
	isCommand()
}

// CreateRole creates a role holding the given permissions
type CreateRole struct {
	RoleName    string
	Permissions []string
}

// AppendRolePermissions adds permissions to an existing role
type AppendRolePermissions struct {
	RoleName    string
	Permissions []string
}

// AppendRole attaches a role to an account
type AppendRole struct {
	AccountID string
	RoleName  string
}

// DetachRole removes a role from an account
type DetachRole struct {
	AccountID string
	RoleName  string
}

// CreateDomain creates a domain whose new accounts receive DefaultRole
type CreateDomain struct {
	DomainID    string
	DefaultRole string
}

// CreateAccount creates the account AccountName@DomainID
type CreateAccount struct {
	AccountName string
	DomainID    string
}

// SetAccountDetail sets Key=Value in the namespace of the transaction
// creator inside the detail store of AccountID
type SetAccountDetail struct {
	AccountID string
	Key       string
	Value     string
}

// GrantPermission grants AccountID a grantable permission over the
// account of the transaction creator
type GrantPermission struct {
	AccountID  string
	Permission string
}

// RevokePermission revokes a grantable permission previously granted
// to AccountID by the transaction creator
type RevokePermission struct {
	AccountID  string
	Permission string
}

// SetQuorum sets the number of signatures required from AccountID
type SetQuorum struct {
	AccountID string
	Quorum    uint32
}

// AddPeer registers a consensus peer
type AddPeer struct {
	Peer *Peer
}

// RemovePeer removes the consensus peer with the given public key
type RemovePeer struct {
	PublicKey []byte
}

// CreateAsset creates the asset AssetName#DomainID
type CreateAsset struct {
	AssetName string
	DomainID  string
	Precision uint32
}

// Name implements Command
func (*CreateRole) Name() string { return CreateRoleName }

// Name implements Command
func (*AppendRolePermissions) Name() string { return AppendRolePermissionsName }

// Name implements Command
func (*AppendRole) Name() string { return AppendRoleName }

// Name implements Command
func (*DetachRole) Name() string { return DetachRoleName }

// Name implements Command
func (*CreateDomain) Name() string { return CreateDomainName }

// Name implements Command
func (*CreateAccount) Name() string { return CreateAccountName }

// Name implements Command
func (*SetAccountDetail) Name() string { return SetAccountDetailName }

// Name implements Command
func (*GrantPermission) Name() string { return GrantPermissionName }

// Name implements Command
func (*RevokePermission) Name() string { return RevokePermissionName }

// Name implements Command
func (*SetQuorum) Name() string { return SetQuorumName }

// Name implements Command
func (*AddPeer) Name() string { return AddPeerName }

// Name implements Command
func (*RemovePeer) Name() string { return RemovePeerName }

// Name implements Command
func (*CreateAsset) Name() string { return CreateAssetName }

func (*CreateRole) isCommand()            {}
func (*AppendRolePermissions) isCommand() {}
func (*AppendRole) isCommand()            {}
func (*DetachRole) isCommand()            {}
func (*CreateDomain) isCommand()          {}
func (*CreateAccount) isCommand()         {}
func (*SetAccountDetail) isCommand()      {}
func (*GrantPermission) isCommand()       {}
func (*RevokePermission) isCommand()      {}
func (*SetQuorum) isCommand()             {}
func (*AddPeer) isCommand()               {}
func (*RemovePeer) isCommand()            {}
func (*CreateAsset) isCommand()           {}
