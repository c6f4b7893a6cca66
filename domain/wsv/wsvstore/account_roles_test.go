package wsvstore

import (
	"reflect"
	"testing"

	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/pkg/errors"
)

func TestInsertAccountRole(t *testing.T) {
	tests := []struct {
		name          string
		accountID     string
		roleName      string
		expectedErr   error
		expectedRoles []string
	}{
		{
			name:          "account and role exist",
			accountID:     testAccountID,
			roleName:      testRole,
			expectedRoles: []string{testRole},
		},
		{
			name:          "no account",
			accountID:     "some@domain",
			roleName:      testRole,
			expectedErr:   ruleerrors.ErrMissingAccount,
			expectedRoles: []string{},
		},
		{
			name:          "no role",
			accountID:     testAccountID,
			roleName:      "crab",
			expectedErr:   ruleerrors.ErrMissingRole,
			expectedRoles: []string{},
		},
	}
	for _, test := range tests {
		func() {
			store, teardown := prepareStoreForTest(t, "TestInsertAccountRole")
			defer teardown()
			prepareAccountForTest(t, "TestInsertAccountRole", store)

			err := store.InsertAccountRole(test.accountID, test.roleName)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("TestInsertAccountRole: %s: expected error %v, got %v", test.name, test.expectedErr, err)
			}
			roles, ok := store.AccountRoles(test.accountID)
			if !ok {
				t.Fatalf("TestInsertAccountRole: %s: AccountRoles unexpectedly failed", test.name)
			}
			if !reflect.DeepEqual(roles, test.expectedRoles) {
				t.Fatalf("TestInsertAccountRole: %s: expected roles %v, got %v", test.name, test.expectedRoles, roles)
			}
		}()
	}
}

func TestDeleteAccountRole(t *testing.T) {
	tests := []struct {
		name          string
		accountID     string
		roleName      string
		expectedRoles []string
	}{
		{
			name:          "attached",
			accountID:     testAccountID,
			roleName:      testRole,
			expectedRoles: []string{},
		},
		{
			name:          "no account",
			accountID:     "no",
			roleName:      testRole,
			expectedRoles: []string{testRole},
		},
		{
			name:          "no role",
			accountID:     testAccountID,
			roleName:      "no",
			expectedRoles: []string{testRole},
		},
	}
	for _, test := range tests {
		func() {
			store, teardown := prepareStoreForTest(t, "TestDeleteAccountRole")
			defer teardown()
			prepareAccountForTest(t, "TestDeleteAccountRole", store)

			err := store.InsertAccountRole(testAccountID, testRole)
			if err != nil {
				t.Fatalf("TestDeleteAccountRole: %s: InsertAccountRole unexpectedly failed: %s", test.name, err)
			}
			// Deleting twice leaves the same state as deleting once
			for i := 0; i < 2; i++ {
				err = store.DeleteAccountRole(test.accountID, test.roleName)
				if err != nil {
					t.Fatalf("TestDeleteAccountRole: %s: DeleteAccountRole unexpectedly failed: %s", test.name, err)
				}
				roles, _ := store.AccountRoles(testAccountID)
				if !reflect.DeepEqual(roles, test.expectedRoles) {
					t.Fatalf("TestDeleteAccountRole: %s: expected roles %v, got %v",
						test.name, test.expectedRoles, roles)
				}
			}
		}()
	}
}

func TestAccountPermissions(t *testing.T) {
	store, teardown := prepareStoreForTest(t, "TestAccountPermissions")
	defer teardown()
	prepareAccountForTest(t, "TestAccountPermissions", store)

	err := store.InsertRole("admin")
	if err != nil {
		t.Fatalf("TestAccountPermissions: InsertRole unexpectedly failed: %s", err)
	}
	err = store.InsertRolePermissions(testRole, []string{"a", "b"})
	if err != nil {
		t.Fatalf("TestAccountPermissions: InsertRolePermissions unexpectedly failed: %s", err)
	}
	err = store.InsertRolePermissions("admin", []string{"b", "c"})
	if err != nil {
		t.Fatalf("TestAccountPermissions: InsertRolePermissions unexpectedly failed: %s", err)
	}
	for _, roleName := range []string{testRole, "admin"} {
		err = store.InsertAccountRole(testAccountID, roleName)
		if err != nil {
			t.Fatalf("TestAccountPermissions: InsertAccountRole unexpectedly failed: %s", err)
		}
	}

	permissions, ok := store.AccountPermissions(testAccountID)
	expected := map[string]struct{}{"a": {}, "b": {}, "c": {}}
	if !ok || !reflect.DeepEqual(permissions, expected) {
		t.Fatalf("TestAccountPermissions: expected %v, got %v (ok=%t)", expected, permissions, ok)
	}
}
