package wsvstore

import (
	"github.com/kaspanet/wsvd/infrastructure/db/database"
)

func accountRoleBucket(accountID string) *database.Bucket {
	return accountRolesBucket.Bucket(database.EncodeComponent(accountID))
}

func accountRoleKey(accountID, roleName string) *database.Key {
	return accountRoleBucket(accountID).Key(database.EncodeComponent(roleName))
}

// InsertAccountRole attaches an existing role to an existing account
func (s *WSVStore) InsertAccountRole(accountID, roleName string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	err = s.checkAccountExists(accountID)
	if err != nil {
		return err
	}
	err = s.checkRoleExists(roleName)
	if err != nil {
		return err
	}
	return s.put(accountRoleKey(accountID, roleName), []byte{})
}

// DeleteAccountRole detaches a role from an account. Detaching a role
// that is not attached is a no-op.
func (s *WSVStore) DeleteAccountRole(accountID, roleName string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	return s.delete(accountRoleKey(accountID, roleName))
}

// AccountRoles returns the roles attached to an account. An account
// that does not exist has no roles.
func (s *WSVStore) AccountRoles(accountID string) ([]string, bool) {
	if !s.isReadable() {
		return nil, false
	}
	roles, err := s.components(accountRoleBucket(accountID))
	if err != nil {
		log.Debugf("Failed reading the roles of account %s: %s", accountID, err)
		return nil, false
	}
	return roles, true
}

// AccountPermissions returns the union of the permissions of all the
// roles attached to an account
func (s *WSVStore) AccountPermissions(accountID string) (map[string]struct{}, bool) {
	roles, ok := s.AccountRoles(accountID)
	if !ok {
		return nil, false
	}
	permissions := make(map[string]struct{})
	for _, roleName := range roles {
		rolePermissions, ok := s.RolePermissions(roleName)
		if !ok {
			return nil, false
		}
		for _, permission := range rolePermissions {
			permissions[permission] = struct{}{}
		}
	}
	return permissions, true
}
