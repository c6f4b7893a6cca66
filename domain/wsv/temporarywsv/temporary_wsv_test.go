package temporarywsv

import (
	"reflect"
	"testing"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/wsvstore"
	"github.com/kaspanet/wsvd/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

func prepareDatabaseForTest(t *testing.T, testName string, roles ...string) (db *ldb.LevelDB, teardownFunc func()) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("%s: NewInMemoryLevelDB unexpectedly failed: %s", testName, err)
	}
	err = wsvstore.Initialize(db)
	if err != nil {
		t.Fatalf("%s: Initialize unexpectedly failed: %s", testName, err)
	}
	store := wsvstore.New(db)
	for _, roleName := range roles {
		err := store.InsertRole(roleName)
		if err != nil {
			t.Fatalf("%s: InsertRole unexpectedly failed: %s", testName, err)
		}
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
}

// createRoles executes CreateRole commands and fails on any other
func createRoles(_ *model.Transaction, command model.Command,
	wsvCommand model.WSVCommand, _ model.WSVQuery) error {

	createRole, ok := command.(*model.CreateRole)
	if !ok {
		return errors.Errorf("unexpected command %s", command.Name())
	}
	return wsvCommand.InsertRole(createRole.RoleName)
}

func createRolesTransaction(roles ...string) *model.Transaction {
	transaction := &model.Transaction{CreatorAccountID: "admin@test"}
	for _, roleName := range roles {
		transaction.Commands = append(transaction.Commands, &model.CreateRole{RoleName: roleName})
	}
	return transaction
}

func checkRoles(t *testing.T, testName string, query model.WSVQuery, expected []string) {
	roles, ok := query.Roles()
	if !ok {
		t.Fatalf("%s: Roles unexpectedly failed", testName)
	}
	if !reflect.DeepEqual(roles, expected) {
		t.Fatalf("%s: expected roles %v, got %v", testName, expected, roles)
	}
}

func TestApplyIsTransactional(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestApplyIsTransactional")
	defer teardown()

	temporaryWSV := New(db)
	err := temporaryWSV.Apply(createRolesTransaction("admin"), createRoles)
	if err != nil {
		t.Fatalf("TestApplyIsTransactional: Apply unexpectedly failed: %s", err)
	}

	// The second command fails, so the role created by the first is dropped
	failing := createRolesTransaction("user")
	failing.Commands = append(failing.Commands, &model.CreateDomain{DomainID: "test", DefaultRole: "user"})
	err = temporaryWSV.Apply(failing, createRoles)
	commandFailed := &ruleerrors.ErrCommandFailed{}
	if !errors.As(err, commandFailed) {
		t.Fatalf("TestApplyIsTransactional: expected ErrCommandFailed, got %v", err)
	}
	if commandFailed.Index != 1 {
		t.Fatalf("TestApplyIsTransactional: expected the command at index 1 to fail, got %d", commandFailed.Index)
	}

	// A duplicate role fails in the store
	err = temporaryWSV.Apply(createRolesTransaction("money_creator", "admin"), createRoles)
	if !errors.Is(err, ruleerrors.ErrDuplicateRole) {
		t.Fatalf("TestApplyIsTransactional: expected ErrDuplicateRole, got %v", err)
	}

	checkRoles(t, "TestApplyIsTransactional", temporaryWSV.Query(), []string{"admin"})
	checkRoles(t, "TestApplyIsTransactional", wsvstore.New(db), []string{})
}

func TestCursorMergesStagedChanges(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestCursorMergesStagedChanges", "b", "d")
	defer teardown()

	temporaryWSV := New(db)
	err := temporaryWSV.Apply(createRolesTransaction("c", "a"), createRoles)
	if err != nil {
		t.Fatalf("TestCursorMergesStagedChanges: Apply unexpectedly failed: %s", err)
	}
	err = temporaryWSV.Apply(createRolesTransaction(), func(_ *model.Transaction, _ model.Command,
		_ model.WSVCommand, _ model.WSVQuery) error {
		return nil
	})
	if err != nil {
		t.Fatalf("TestCursorMergesStagedChanges: Apply of an empty transaction unexpectedly failed: %s", err)
	}

	checkRoles(t, "TestCursorMergesStagedChanges", temporaryWSV.Query(), []string{"a", "b", "c", "d"})
}

func TestReadsOwnWritesWithinTransaction(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestReadsOwnWritesWithinTransaction")
	defer teardown()

	temporaryWSV := New(db)
	transaction := &model.Transaction{
		CreatorAccountID: "admin@test",
		Commands: []model.Command{
			&model.CreateRole{RoleName: "user"},
			&model.CreateDomain{DomainID: "test", DefaultRole: "user"},
		},
	}
	err := temporaryWSV.Apply(transaction, func(_ *model.Transaction, command model.Command,
		wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

		switch command := command.(type) {
		case *model.CreateRole:
			return wsvCommand.InsertRole(command.RoleName)
		case *model.CreateDomain:
			roles, _ := wsvQuery.Roles()
			if !reflect.DeepEqual(roles, []string{"user"}) {
				return errors.Errorf("expected the staged role to be visible, got %v", roles)
			}
			return wsvCommand.InsertDomain(&model.Domain{DomainID: command.DomainID, DefaultRole: command.DefaultRole})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("TestReadsOwnWritesWithinTransaction: Apply unexpectedly failed: %s", err)
	}
	if _, ok := temporaryWSV.Query().Domain("test"); !ok {
		t.Fatalf("TestReadsOwnWritesWithinTransaction: domain was not staged")
	}
}

func TestCommit(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestCommit", "stale")
	defer teardown()

	temporaryWSV := New(db)
	err := temporaryWSV.Apply(createRolesTransaction("admin", "user"), createRoles)
	if err != nil {
		t.Fatalf("TestCommit: Apply unexpectedly failed: %s", err)
	}
	entries := temporaryWSV.StagedEntries()
	if len(entries) != 2 || entries[0].IsDeleted || entries[1].IsDeleted {
		t.Fatalf("TestCommit: expected two staged puts, got %v", entries)
	}
	if entries[0].Key >= entries[1].Key {
		t.Fatalf("TestCommit: staged entries are not sorted")
	}

	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("TestCommit: Begin unexpectedly failed: %s", err)
	}
	defer dbTx.RollbackUnlessClosed()
	err = temporaryWSV.Commit(dbTx)
	if err != nil {
		t.Fatalf("TestCommit: Commit unexpectedly failed: %s", err)
	}
	err = dbTx.Commit()
	if err != nil {
		t.Fatalf("TestCommit: dbTx.Commit unexpectedly failed: %s", err)
	}

	checkRoles(t, "TestCommit", wsvstore.New(db), []string{"admin", "stale", "user"})

	if temporaryWSV.Commit(db) == nil {
		t.Fatalf("TestCommit: a second Commit unexpectedly succeeded")
	}
	if temporaryWSV.Apply(createRolesTransaction("late"), createRoles) == nil {
		t.Fatalf("TestCommit: Apply after Commit unexpectedly succeeded")
	}
}

func TestCommitment(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestCommitment")
	defer teardown()

	first := New(db)
	err := first.Apply(createRolesTransaction("admin", "user"), createRoles)
	if err != nil {
		t.Fatalf("TestCommitment: Apply unexpectedly failed: %s", err)
	}
	second := New(db)
	for _, roleName := range []string{"user", "admin"} {
		err := second.Apply(createRolesTransaction(roleName), createRoles)
		if err != nil {
			t.Fatalf("TestCommitment: Apply unexpectedly failed: %s", err)
		}
	}
	if first.Commitment() != second.Commitment() {
		t.Fatalf("TestCommitment: equal staged changes have different commitments")
	}

	empty := New(db).Commitment()
	if first.Commitment() == empty {
		t.Fatalf("TestCommitment: staged changes have the commitment of no changes")
	}
	first.Discard()
	if first.Commitment() != empty {
		t.Fatalf("TestCommitment: Discard did not drop the staged changes")
	}
	checkRoles(t, "TestCommitment", first.Query(), []string{})
}
