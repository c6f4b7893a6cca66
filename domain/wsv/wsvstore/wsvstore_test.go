package wsvstore

import (
	"testing"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

// checkUnreadable verifies that every query on store returns nothing
func checkUnreadable(t *testing.T, testName string, store *WSVStore) {
	if _, ok := store.Account("some account"); ok {
		t.Fatalf("%s: Account unexpectedly succeeded", testName)
	}
	if roles, ok := store.Roles(); ok || roles != nil {
		t.Fatalf("%s: Roles unexpectedly succeeded", testName)
	}
	if _, ok := store.RolePermissions(testRole); ok {
		t.Fatalf("%s: RolePermissions unexpectedly succeeded", testName)
	}
	if _, ok := store.AccountRoles(testAccountID); ok {
		t.Fatalf("%s: AccountRoles unexpectedly succeeded", testName)
	}
	if _, ok := store.AccountPermissions(testAccountID); ok {
		t.Fatalf("%s: AccountPermissions unexpectedly succeeded", testName)
	}
	if store.HasAccountGrantablePermission(testAccountID, testAccountID, testPermission) {
		t.Fatalf("%s: HasAccountGrantablePermission unexpectedly succeeded", testName)
	}
	if _, ok := store.Peers(); ok {
		t.Fatalf("%s: Peers unexpectedly succeeded", testName)
	}
	if _, ok := store.Domain(testDomainID); ok {
		t.Fatalf("%s: Domain unexpectedly succeeded", testName)
	}
	if _, ok := store.Asset("coin#domain"); ok {
		t.Fatalf("%s: Asset unexpectedly succeeded", testName)
	}
}

func TestQueryWhenUninitialized(t *testing.T) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("TestQueryWhenUninitialized: NewInMemoryLevelDB unexpectedly failed: %s", err)
	}
	defer db.Close()
	store := New(db)

	checkUnreadable(t, "TestQueryWhenUninitialized", store)

	err = store.InsertRole(testRole)
	if !errors.Is(err, ruleerrors.ErrStoreUninitialized) {
		t.Fatalf("TestQueryWhenUninitialized: expected ErrStoreUninitialized, got %v", err)
	}
	err = store.DeletePeer(&model.Peer{PublicKey: []byte{1}})
	if !ruleerrors.IsUnavailableError(err) {
		t.Fatalf("TestQueryWhenUninitialized: expected an unavailable error, got %v", err)
	}

	err = Initialize(db)
	if err != nil {
		t.Fatalf("TestQueryWhenUninitialized: Initialize unexpectedly failed: %s", err)
	}
	err = Initialize(db)
	if err != nil {
		t.Fatalf("TestQueryWhenUninitialized: a second Initialize unexpectedly failed: %s", err)
	}
	err = store.InsertRole(testRole)
	if err != nil {
		t.Fatalf("TestQueryWhenUninitialized: InsertRole unexpectedly failed after Initialize: %s", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	store := New(unavailableDataAccessor{})

	checkUnreadable(t, "TestStoreUnavailable", store)

	writes := map[string]func() error{
		"InsertRole": func() error { return store.InsertRole(testRole) },
		"InsertAccount": func() error {
			return store.InsertAccount(newTestAccount(testAccountID))
		},
		"SetAccountKV": func() error {
			return store.SetAccountKV(testAccountID, testAccountID, "key", "value")
		},
		"DeleteAccountRole": func() error {
			return store.DeleteAccountRole(testAccountID, testRole)
		},
	}
	for name, write := range writes {
		err := write()
		if !errors.Is(err, ruleerrors.ErrStoreUnavailable) {
			t.Fatalf("TestStoreUnavailable: %s: expected ErrStoreUnavailable, got %v", name, err)
		}
	}
}
