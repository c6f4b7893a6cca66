package wsvstore

import (
	"github.com/kaspanet/wsvd/infrastructure/db/database"
)

func grantablePermissionKey(permitteeAccountID, accountID, permission string) *database.Key {
	return grantablePermissionsBucket.
		Bucket(database.EncodeComponent(permitteeAccountID)).
		Bucket(database.EncodeComponent(accountID)).
		Key(database.EncodeComponent(permission))
}

// InsertAccountGrantablePermission grants permitteeAccountID permission
// over accountID. Both accounts must exist.
func (s *WSVStore) InsertAccountGrantablePermission(permitteeAccountID, accountID, permission string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	err = s.checkAccountExists(permitteeAccountID)
	if err != nil {
		return err
	}
	err = s.checkAccountExists(accountID)
	if err != nil {
		return err
	}
	return s.put(grantablePermissionKey(permitteeAccountID, accountID, permission), []byte{})
}

// DeleteAccountGrantablePermission revokes a grant. Revoking a grant
// that does not exist is a no-op.
func (s *WSVStore) DeleteAccountGrantablePermission(permitteeAccountID, accountID, permission string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	return s.delete(grantablePermissionKey(permitteeAccountID, accountID, permission))
}

// HasAccountGrantablePermission returns whether permitteeAccountID holds
// permission over accountID
func (s *WSVStore) HasAccountGrantablePermission(permitteeAccountID, accountID, permission string) bool {
	if !s.isReadable() {
		return false
	}
	exists, err := s.dataAccessor.Has(grantablePermissionKey(permitteeAccountID, accountID, permission))
	if err != nil {
		log.Debugf("Failed reading a grant of %s over %s: %s", permitteeAccountID, accountID, err)
		return false
	}
	return exists
}
