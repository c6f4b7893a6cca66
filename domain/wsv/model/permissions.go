package model

// Role permissions
const (
	CanCreateRole    = "can_create_role"
	CanAppendRole    = "can_append_role"
	CanDetachRole    = "can_detach_role"
	CanCreateDomain  = "can_create_domain"
	CanCreateAccount = "can_create_account"
	CanSetDetail     = "can_set_detail"
	CanSetQuorum     = "can_set_quorum"
	CanAddPeer       = "can_add_peer"
	CanRemovePeer    = "can_remove_peer"
	CanCreateAsset   = "can_create_asset"
)

// Grantable permissions. A grantable permission held by a permittee
// over an account lets the permittee act on that account.
const (
	CanSetMyAccountDetail = "can_set_my_account_detail"
	CanSetMyQuorum        = "can_set_my_quorum"
)

// GrantablePermissions is the set of permissions that may be granted
// with GrantPermission
var GrantablePermissions = map[string]struct{}{
	CanSetMyAccountDetail: {},
	CanSetMyQuorum:        {},
}

// CanGrantPermission returns the role permission required to grant
// the given grantable permission
func CanGrantPermission(permission string) string {
	return "can_grant_" + permission
}
