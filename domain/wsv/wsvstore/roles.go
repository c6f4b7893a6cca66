package wsvstore

import (
	"unicode/utf8"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

func roleKey(roleName string) *database.Key {
	return rolesBucket.Key(database.EncodeComponent(roleName))
}

func rolePermissionBucket(roleName string) *database.Bucket {
	return rolePermissionsBucket.Bucket(database.EncodeComponent(roleName))
}

// InsertRole creates a role with no permissions
func (s *WSVStore) InsertRole(roleName string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	if length := utf8.RuneCountInString(roleName); length > model.MaxRoleNameLength {
		return errors.Wrapf(ruleerrors.ErrRoleNameTooLong, "role name is %d characters long, "+
			"the maximum is %d", length, model.MaxRoleNameLength)
	}
	exists, err := s.has(roleKey(roleName))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrDuplicateRole, "role %s already exists", roleName)
	}
	return s.put(roleKey(roleName), []byte{})
}

// InsertRolePermissions associates the given permissions with an
// existing role
func (s *WSVStore) InsertRolePermissions(roleName string, permissions []string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	err = s.checkRoleExists(roleName)
	if err != nil {
		return err
	}
	bucket := rolePermissionBucket(roleName)
	keys := make([]*database.Key, len(permissions))
	for i, permission := range permissions {
		keys[i] = bucket.Key(database.EncodeComponent(permission))
	}
	return s.putAll(keys, []byte{})
}

func (s *WSVStore) checkRoleExists(roleName string) error {
	exists, err := s.has(roleKey(roleName))
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ruleerrors.ErrMissingRole, "role %s does not exist", roleName)
	}
	return nil
}

// Roles returns the names of all roles
func (s *WSVStore) Roles() ([]string, bool) {
	if !s.isReadable() {
		return nil, false
	}
	roles, err := s.components(rolesBucket)
	if err != nil {
		log.Debugf("Failed reading roles: %s", err)
		return nil, false
	}
	return roles, true
}

// RolePermissions returns the permissions of roleName. A role that does
// not exist has no permissions.
func (s *WSVStore) RolePermissions(roleName string) ([]string, bool) {
	if !s.isReadable() {
		return nil, false
	}
	permissions, err := s.components(rolePermissionBucket(roleName))
	if err != nil {
		log.Debugf("Failed reading the permissions of role %s: %s", roleName, err)
		return nil, false
	}
	return permissions, true
}
