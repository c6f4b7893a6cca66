package statefulvalidator

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/wsvd/domain/wsv/commandexecutor"
	"github.com/kaspanet/wsvd/domain/wsv/commandvalidator"
	"github.com/kaspanet/wsvd/domain/wsv/hashing"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/temporarywsv"
	"github.com/kaspanet/wsvd/domain/wsv/wsvstore"
	"github.com/kaspanet/wsvd/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

const admin = "admin@test"

func prepareDatabaseForTest(t *testing.T, testName string) (db *ldb.LevelDB, teardownFunc func()) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("%s: NewInMemoryLevelDB unexpectedly failed: %s", testName, err)
	}
	err = wsvstore.Initialize(db)
	if err != nil {
		t.Fatalf("%s: Initialize unexpectedly failed: %s", testName, err)
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
}

// acceptingValidator accepts every executed command
type acceptingValidator struct{}

func (acceptingValidator) Validate(*model.Transaction, model.Command, map[string]struct{}, model.WSVQuery) error {
	return nil
}

func signed(transaction *model.Transaction) *model.Transaction {
	transaction.Signatures = []*model.Signature{{PublicKey: []byte{1}, Signature: []byte{1}}}
	return transaction
}

func TestValidateDropsFailedTransaction(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestValidateDropsFailedTransaction")
	defer teardown()

	createAdmin := signed(&model.Transaction{
		CreatorAccountID: admin,
		Commands:         []model.Command{&model.CreateRole{RoleName: "admin"}},
	})
	appendToGhost := signed(&model.Transaction{
		CreatorAccountID: admin,
		Commands: []model.Command{
			&model.CreateRole{RoleName: "user"},
			&model.AppendRolePermissions{RoleName: "ghost", Permissions: []string{model.CanCreateRole}},
		},
	})
	proposal := &model.Proposal{Height: 2, Transactions: []*model.Transaction{createAdmin, appendToGhost}}

	temporaryWSV := temporarywsv.New(db)
	validated, rejected := New(commandexecutor.New(), acceptingValidator{}).Validate(proposal, temporaryWSV)

	if validated.Height != proposal.Height {
		t.Fatalf("TestValidateDropsFailedTransaction: expected height %d, got %d", proposal.Height, validated.Height)
	}
	if !reflect.DeepEqual(validated.Transactions, []*model.Transaction{createAdmin}) {
		t.Fatalf("TestValidateDropsFailedTransaction: expected only the first transaction, got %s",
			spew.Sdump(validated.Transactions))
	}
	if len(rejected) != 1 || rejected[0].Transaction != appendToGhost {
		t.Fatalf("TestValidateDropsFailedTransaction: expected the second transaction to be rejected, got %s",
			spew.Sdump(rejected))
	}
	if rejected[0].TransactionID != hashing.TransactionID(appendToGhost) {
		t.Fatalf("TestValidateDropsFailedTransaction: unexpected rejected transaction ID")
	}
	if !errors.Is(rejected[0].Error, ruleerrors.ErrMissingRole) {
		t.Fatalf("TestValidateDropsFailedTransaction: expected ErrMissingRole, got %v", rejected[0].Error)
	}

	roles, _ := temporaryWSV.Query().Roles()
	if !reflect.DeepEqual(roles, []string{"admin"}) {
		t.Fatalf("TestValidateDropsFailedTransaction: expected only the role of the first transaction, got %v", roles)
	}
}

// genesis stages a role "admin" holding every role permission, a domain
// "test" and the account admin@test
func genesis(t *testing.T, testName string, temporaryWSV *temporarywsv.TemporaryWSV) {
	transaction := &model.Transaction{
		CreatorAccountID: admin,
		Commands: []model.Command{
			&model.CreateRole{RoleName: "admin", Permissions: []string{
				model.CanCreateRole, model.CanAppendRole, model.CanCreateDomain, model.CanCreateAccount,
				model.CanSetDetail,
			}},
			&model.CreateRole{RoleName: "user"},
			&model.CreateDomain{DomainID: "test", DefaultRole: "user"},
			&model.CreateAccount{AccountName: "admin", DomainID: "test"},
			&model.AppendRole{AccountID: admin, RoleName: "admin"},
		},
	}
	executor := commandexecutor.New()
	err := temporaryWSV.Apply(transaction, func(transaction *model.Transaction, command model.Command,
		wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {
		return executor.Execute(transaction.CreatorAccountID, command, wsvCommand, wsvQuery)
	})
	if err != nil {
		t.Fatalf("%s: genesis unexpectedly failed: %s", testName, err)
	}
}

func orderDependentProposal() *model.Proposal {
	return &model.Proposal{
		Height: 2,
		Transactions: []*model.Transaction{
			// Depends on nothing
			signed(&model.Transaction{
				CreatorAccountID: admin,
				CreatedTime:      1,
				Commands: []model.Command{
					&model.CreateRole{RoleName: "writer", Permissions: []string{model.CanSetDetail}},
				},
			}),
			// Lacks a signature
			{
				CreatorAccountID: admin,
				CreatedTime:      2,
				Commands:         []model.Command{&model.CreateDomain{DomainID: "unsigned", DefaultRole: "user"}},
			},
			// Depends on the role created by the first transaction
			signed(&model.Transaction{
				CreatorAccountID: admin,
				CreatedTime:      3,
				Commands: []model.Command{
					&model.CreateAccount{AccountName: "alice", DomainID: "test"},
					&model.AppendRole{AccountID: "alice@test", RoleName: "writer"},
				},
			}),
			// Depends on the account created by the third transaction
			signed(&model.Transaction{
				CreatorAccountID: "alice@test",
				CreatedTime:      4,
				Commands: []model.Command{
					&model.SetAccountDetail{AccountID: admin, Key: "note", Value: "hello"},
				},
			}),
			// alice@test may not create roles
			signed(&model.Transaction{
				CreatorAccountID: "alice@test",
				CreatedTime:      5,
				Commands:         []model.Command{&model.CreateRole{RoleName: "rogue"}},
			}),
		},
	}
}

func TestValidateIsOrderDependent(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestValidateIsOrderDependent")
	defer teardown()

	temporaryWSV := temporarywsv.New(db)
	genesis(t, "TestValidateIsOrderDependent", temporaryWSV)

	proposal := orderDependentProposal()
	validator := New(commandexecutor.New(), commandvalidator.New())
	validated, rejected := validator.Validate(proposal, temporaryWSV)

	expected := []*model.Transaction{proposal.Transactions[0], proposal.Transactions[2], proposal.Transactions[3]}
	if !reflect.DeepEqual(validated.Transactions, expected) {
		t.Fatalf("TestValidateIsOrderDependent: expected transactions 0, 2 and 3, got %s",
			spew.Sdump(validated.Transactions))
	}
	if len(rejected) != 2 {
		t.Fatalf("TestValidateIsOrderDependent: expected 2 rejected transactions, got %d", len(rejected))
	}
	if !errors.Is(rejected[0].Error, ruleerrors.ErrQuorumNotMet) {
		t.Fatalf("TestValidateIsOrderDependent: expected ErrQuorumNotMet, got %v", rejected[0].Error)
	}
	if !errors.Is(rejected[1].Error, ruleerrors.ErrNoPermission) {
		t.Fatalf("TestValidateIsOrderDependent: expected ErrNoPermission, got %v", rejected[1].Error)
	}

	detail, _ := temporaryWSV.Query().AccountDetail(admin)
	if value, _ := detail.Get("alice@test", "note"); value != "hello" {
		t.Fatalf("TestValidateIsOrderDependent: the detail of the accepted transaction is missing: %s", detail)
	}
	if _, ok := temporaryWSV.Query().Domain("unsigned"); ok {
		t.Fatalf("TestValidateIsOrderDependent: the domain of a rejected transaction was staged")
	}

	// Moving the dependent transaction before its dependency rejects it
	reordered := orderDependentProposal()
	reordered.Transactions[0], reordered.Transactions[2] = reordered.Transactions[2], reordered.Transactions[0]
	reorderedWSV := temporarywsv.New(db)
	genesis(t, "TestValidateIsOrderDependent", reorderedWSV)
	validated, _ = validator.Validate(reordered, reorderedWSV)
	for _, transaction := range validated.Transactions {
		if transaction.CreatedTime == 3 {
			t.Fatalf("TestValidateIsOrderDependent: a transaction was accepted before its dependency")
		}
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestValidateIsDeterministic")
	defer teardown()

	validator := New(commandexecutor.New(), commandvalidator.New())
	var firstProposal *model.Proposal
	var firstCommitment model.Hash
	for i := 0; i < 3; i++ {
		temporaryWSV := temporarywsv.New(db)
		genesis(t, "TestValidateIsDeterministic", temporaryWSV)
		validated, _ := validator.Validate(orderDependentProposal(), temporaryWSV)
		if i == 0 {
			firstProposal = validated
			firstCommitment = temporaryWSV.Commitment()
			continue
		}
		if hashing.ProposalHash(validated) != hashing.ProposalHash(firstProposal) {
			t.Fatalf("TestValidateIsDeterministic: pass %d accepted different transactions", i)
		}
		if temporaryWSV.Commitment() != firstCommitment {
			t.Fatalf("TestValidateIsDeterministic: pass %d staged different changes", i)
		}
	}
}

func TestValidateEmptyProposal(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestValidateEmptyProposal")
	defer teardown()

	validated, rejected := New(commandexecutor.New(), commandvalidator.New()).
		Validate(&model.Proposal{Height: 7}, temporarywsv.New(db))
	if validated.Height != 7 || len(validated.Transactions) != 0 || len(rejected) != 0 {
		t.Fatalf("TestValidateEmptyProposal: unexpected result %s %s", spew.Sdump(validated), spew.Sdump(rejected))
	}
}

func TestValidateRejectsSelfGrantedPermissions(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestValidateRejectsSelfGrantedPermissions")
	defer teardown()

	temporaryWSV := temporarywsv.New(db)
	genesis(t, "TestValidateRejectsSelfGrantedPermissions", temporaryWSV)

	const bob = "bob@test"
	createBob := signed(&model.Transaction{
		CreatorAccountID: admin,
		Commands: []model.Command{
			&model.CreateRole{RoleName: "appender", Permissions: []string{model.CanAppendRole, model.CanCreateRole}},
			&model.CreateAccount{AccountName: "bob", DomainID: "test"},
			&model.AppendRole{AccountID: bob, RoleName: "appender"},
		},
	})
	appendAdminToSelf := signed(&model.Transaction{
		CreatorAccountID: bob,
		Commands:         []model.Command{&model.AppendRole{AccountID: bob, RoleName: "admin"}},
	})
	extendOwnRole := signed(&model.Transaction{
		CreatorAccountID: bob,
		Commands: []model.Command{
			&model.AppendRolePermissions{RoleName: "appender", Permissions: []string{model.CanSetDetail}},
		},
	})
	proposal := &model.Proposal{
		Height:       2,
		Transactions: []*model.Transaction{createBob, appendAdminToSelf, extendOwnRole},
	}

	validated, rejected := New(commandexecutor.New(), commandvalidator.New()).Validate(proposal, temporaryWSV)
	if !reflect.DeepEqual(validated.Transactions, []*model.Transaction{createBob}) {
		t.Fatalf("TestValidateRejectsSelfGrantedPermissions: expected only the first transaction, got %s",
			spew.Sdump(validated.Transactions))
	}
	if len(rejected) != 2 {
		t.Fatalf("TestValidateRejectsSelfGrantedPermissions: expected 2 rejected transactions, got %d", len(rejected))
	}
	for _, rejectedTransaction := range rejected {
		if !errors.Is(rejectedTransaction.Error, ruleerrors.ErrNoPermission) {
			t.Fatalf("TestValidateRejectsSelfGrantedPermissions: expected ErrNoPermission, got %v",
				rejectedTransaction.Error)
		}
	}

	permissions, ok := temporaryWSV.Query().AccountPermissions(bob)
	expected := map[string]struct{}{model.CanAppendRole: {}, model.CanCreateRole: {}}
	if !ok || !reflect.DeepEqual(permissions, expected) {
		t.Fatalf("TestValidateRejectsSelfGrantedPermissions: expected %v, got %v", expected, permissions)
	}
}
