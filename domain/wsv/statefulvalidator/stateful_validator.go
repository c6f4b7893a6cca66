package statefulvalidator

import (
	"github.com/kaspanet/wsvd/domain/wsv/hashing"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/infrastructure/logger"
	"github.com/pkg/errors"
)

// statefulValidator replays the transactions of a proposal, in order,
// against a temporary world state view
type statefulValidator struct {
	commandExecutor  model.CommandExecutor
	commandValidator model.CommandValidator
}

// New instantiates a new StatefulValidator
func New(commandExecutor model.CommandExecutor, commandValidator model.CommandValidator) model.StatefulValidator {
	return &statefulValidator{
		commandExecutor:  commandExecutor,
		commandValidator: commandValidator,
	}
}

// validationResult is the accumulator of the fold over a proposal
type validationResult struct {
	accepted []*model.Transaction
	rejected []*model.RejectedTransaction
}

// Validate returns a proposal with the height of proposal holding only
// the transactions of proposal that were accepted, in their original
// order, together with the rejected transactions and their reasons.
// temporaryWSV is left holding the changes of exactly the accepted
// transactions.
func (sv *statefulValidator) Validate(proposal *model.Proposal,
	temporaryWSV model.TemporaryWSV) (*model.Proposal, []*model.RejectedTransaction) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "statefulValidator.Validate")
	defer onEnd()

	result := &validationResult{
		accepted: []*model.Transaction{},
		rejected: []*model.RejectedTransaction{},
	}
	for _, transaction := range proposal.Transactions {
		result = sv.step(result, transaction, temporaryWSV)
	}

	validated := &model.Proposal{
		Height:       proposal.Height,
		CreatedTime:  proposal.CreatedTime,
		Transactions: result.accepted,
	}
	log.Infof("Validated proposal %s of height %d: %d transactions accepted, %d rejected",
		hashing.ProposalHash(proposal), proposal.Height, len(result.accepted), len(result.rejected))
	return validated, result.rejected
}

// step applies transaction and returns the accumulator that follows
// result
func (sv *statefulValidator) step(result *validationResult, transaction *model.Transaction,
	temporaryWSV model.TemporaryWSV) *validationResult {

	err := temporaryWSV.Apply(transaction, sv.executeAndValidate)
	if err != nil {
		transactionID := hashing.TransactionID(transaction)
		log.Debugf("Rejected transaction %s: %s", transactionID, err)
		return &validationResult{
			accepted: result.accepted,
			rejected: append(result.rejected, &model.RejectedTransaction{
				Transaction:   transaction,
				TransactionID: transactionID,
				Error:         err,
			}),
		}
	}
	log.Tracef("Accepted transaction %s", hashing.TransactionID(transaction))
	return &validationResult{
		accepted: append(result.accepted, transaction),
		rejected: result.rejected,
	}
}

func (sv *statefulValidator) executeAndValidate(transaction *model.Transaction, command model.Command,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	creatorPermissions, ok := wsvQuery.AccountPermissions(transaction.CreatorAccountID)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrStoreUnavailable, "cannot read the permissions of %s",
			transaction.CreatorAccountID)
	}
	err := sv.commandExecutor.Execute(transaction.CreatorAccountID, command, wsvCommand, wsvQuery)
	if err != nil {
		return err
	}
	return sv.commandValidator.Validate(transaction, command, creatorPermissions, wsvQuery)
}
