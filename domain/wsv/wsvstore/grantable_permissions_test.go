package wsvstore

import (
	"testing"

	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/pkg/errors"
)

const testPermitteeAccountID = "id2@domain"

func prepareGrantablePermissionsForTest(t *testing.T, testName string) (*WSVStore, func()) {
	store, teardown := prepareStoreForTest(t, testName)
	prepareAccountForTest(t, testName, store)
	err := store.InsertAccount(newTestAccount(testPermitteeAccountID))
	if err != nil {
		teardown()
		t.Fatalf("%s: InsertAccount unexpectedly failed: %s", testName, err)
	}
	return store, teardown
}

func TestInsertAccountGrantablePermission(t *testing.T) {
	tests := []struct {
		name               string
		permitteeAccountID string
		accountID          string
		expectedErr        error
		expectedGranted    bool
	}{
		{
			name:               "accounts exist",
			permitteeAccountID: testPermitteeAccountID,
			accountID:          testAccountID,
			expectedGranted:    true,
		},
		{
			name:               "no permittee account",
			permitteeAccountID: testPermitteeAccountID + " ",
			accountID:          testAccountID,
			expectedErr:        ruleerrors.ErrMissingAccount,
		},
		{
			name:               "no account",
			permitteeAccountID: testPermitteeAccountID,
			accountID:          testAccountID + " ",
			expectedErr:        ruleerrors.ErrMissingAccount,
		},
	}
	for _, test := range tests {
		func() {
			store, teardown := prepareGrantablePermissionsForTest(t, "TestInsertAccountGrantablePermission")
			defer teardown()

			err := store.InsertAccountGrantablePermission(test.permitteeAccountID, test.accountID, testPermission)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("TestInsertAccountGrantablePermission: %s: expected error %v, got %v",
					test.name, test.expectedErr, err)
			}
			granted := store.HasAccountGrantablePermission(test.permitteeAccountID, test.accountID, testPermission)
			if granted != test.expectedGranted {
				t.Fatalf("TestInsertAccountGrantablePermission: %s: expected granted %t, got %t",
					test.name, test.expectedGranted, granted)
			}
		}()
	}
}

func TestDeleteAccountGrantablePermission(t *testing.T) {
	store, teardown := prepareGrantablePermissionsForTest(t, "TestDeleteAccountGrantablePermission")
	defer teardown()

	// Revoking a grant that does not exist succeeds
	err := store.DeleteAccountGrantablePermission(testPermitteeAccountID, testAccountID, testPermission)
	if err != nil {
		t.Fatalf("TestDeleteAccountGrantablePermission: DeleteAccountGrantablePermission unexpectedly failed: %s", err)
	}

	err = store.InsertAccountGrantablePermission(testPermitteeAccountID, testAccountID, testPermission)
	if err != nil {
		t.Fatalf("TestDeleteAccountGrantablePermission: InsertAccountGrantablePermission unexpectedly failed: %s", err)
	}
	if store.HasAccountGrantablePermission(testAccountID, testPermitteeAccountID, testPermission) {
		t.Fatalf("TestDeleteAccountGrantablePermission: the grant is unexpectedly symmetric")
	}
	err = store.DeleteAccountGrantablePermission(testPermitteeAccountID, testAccountID, testPermission)
	if err != nil {
		t.Fatalf("TestDeleteAccountGrantablePermission: DeleteAccountGrantablePermission unexpectedly failed: %s", err)
	}
	if store.HasAccountGrantablePermission(testPermitteeAccountID, testAccountID, testPermission) {
		t.Fatalf("TestDeleteAccountGrantablePermission: the grant was not revoked")
	}
}
