package wsvstore

import (
	"testing"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/kaspanet/wsvd/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

const (
	testRole       = "role"
	testPermission = "can_set_my_account_detail"
	testDomainID   = "domain"
	testAccountID  = "id@domain"
)

func prepareStoreForTest(t *testing.T, testName string) (store *WSVStore, teardownFunc func()) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("%s: NewInMemoryLevelDB unexpectedly failed: %s", testName, err)
	}
	err = Initialize(db)
	if err != nil {
		t.Fatalf("%s: Initialize unexpectedly failed: %s", testName, err)
	}
	teardownFunc = func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
	return New(db), teardownFunc
}

// prepareAccountForTest inserts testRole, testDomainID and the account
// testAccountID with detail {"id@domain": {"key": "value"}}
func prepareAccountForTest(t *testing.T, testName string, store *WSVStore) *model.Account {
	err := store.InsertRole(testRole)
	if err != nil {
		t.Fatalf("%s: InsertRole unexpectedly failed: %s", testName, err)
	}
	err = store.InsertDomain(&model.Domain{DomainID: testDomainID, DefaultRole: testRole})
	if err != nil {
		t.Fatalf("%s: InsertDomain unexpectedly failed: %s", testName, err)
	}
	account := newTestAccount(testAccountID)
	err = store.InsertAccount(account)
	if err != nil {
		t.Fatalf("%s: InsertAccount unexpectedly failed: %s", testName, err)
	}
	return account
}

func newTestAccount(accountID string) *model.Account {
	detail := model.NewAccountDetail()
	detail.Set("id@domain", "key", "value")
	return &model.Account{
		AccountID: accountID,
		DomainID:  testDomainID,
		Quorum:    1,
		Detail:    detail,
	}
}

var errUnavailable = errors.New("connection refused")

// unavailableDataAccessor fails every operation
type unavailableDataAccessor struct{}

func (unavailableDataAccessor) Put(*database.Key, []byte) error {
	return errUnavailable
}

func (unavailableDataAccessor) Get(*database.Key) ([]byte, error) {
	return nil, errUnavailable
}

func (unavailableDataAccessor) Has(*database.Key) (bool, error) {
	return false, errUnavailable
}

func (unavailableDataAccessor) Delete(*database.Key) error {
	return errUnavailable
}

func (unavailableDataAccessor) Cursor(*database.Bucket) (database.Cursor, error) {
	return nil, errUnavailable
}

// failingDatabase hands out transactions that fail every Put after the
// first failAfter ones
type failingDatabase struct {
	*ldb.LevelDB
	failAfter int
}

func (db *failingDatabase) Begin() (database.Transaction, error) {
	dbTx, err := db.LevelDB.Begin()
	if err != nil {
		return nil, err
	}
	return &failingTransaction{Transaction: dbTx, remainingPuts: db.failAfter}, nil
}

type failingTransaction struct {
	database.Transaction
	remainingPuts int
}

func (tx *failingTransaction) Put(key *database.Key, value []byte) error {
	if tx.remainingPuts == 0 {
		return errUnavailable
	}
	tx.remainingPuts--
	return tx.Transaction.Put(key, value)
}
