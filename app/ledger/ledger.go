package ledger

import (
	"sync"

	"github.com/kaspanet/wsvd/domain/wsv/commandexecutor"
	"github.com/kaspanet/wsvd/domain/wsv/commandvalidator"
	"github.com/kaspanet/wsvd/domain/wsv/hashing"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/statefulvalidator"
	"github.com/kaspanet/wsvd/domain/wsv/temporarywsv"
	"github.com/kaspanet/wsvd/domain/wsv/wsvstore"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/kaspanet/wsvd/infrastructure/logger"
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyInitialized is returned when a genesis block is applied
	// to a ledger that already has one
	ErrAlreadyInitialized = errors.New("the ledger already holds a genesis block")

	// ErrNotInitialized is returned when a ledger without a genesis
	// block is asked for a proposal
	ErrNotInitialized = errors.New("the ledger holds no genesis block")

	// ErrUnexpectedHeight is returned for a block or proposal whose
	// height does not follow the height of the ledger
	ErrUnexpectedHeight = errors.New("unexpected height")

	// ErrStaleResult is returned when committing a result that was not
	// validated on top of the current ledger height
	ErrStaleResult = errors.New("the result was not validated on top of the current ledger")
)

// Ledger is the durable world state view together with the height of
// the last committed block. It owns its database: every commit goes
// through a single database transaction.
type Ledger struct {
	lock sync.Mutex

	database          database.Database
	commandExecutor   model.CommandExecutor
	statefulValidator model.StatefulValidator
}

// Result is the outcome of validating a proposal on top of a ledger.
// It holds the staged changes of the accepted transactions until it is
// committed or discarded.
type Result struct {
	Proposal   *model.Proposal
	Rejected   []*model.RejectedTransaction
	Commitment model.Hash

	temporaryWSV *temporarywsv.TemporaryWSV
}

// New instantiates a new Ledger over db
func New(db database.Database) *Ledger {
	commandExecutor := commandexecutor.New()
	return &Ledger{
		database:          db,
		commandExecutor:   commandExecutor,
		statefulValidator: statefulvalidator.New(commandExecutor, commandvalidator.New()),
	}
}

// Height returns the height of the last committed block, or false if
// the ledger holds no genesis block
func (l *Ledger) Height() (uint64, bool, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return readHeight(l.database)
}

// GenesisHash returns the hash of the genesis block of the ledger
func (l *Ledger) GenesisHash() (model.Hash, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	_, found, err := readHeight(l.database)
	if err != nil {
		return model.Hash{}, err
	}
	if !found {
		return model.Hash{}, errors.WithStack(ErrNotInitialized)
	}
	return readGenesisHash(l.database)
}

// Query returns a read view over the committed world state
func (l *Ledger) Query() model.WSVQuery {
	return wsvstore.New(l.database)
}

// ApplyGenesis initializes the world state with block. The commands of
// the genesis block are executed without validation, and any failure
// leaves the ledger without a genesis block.
func (l *Ledger) ApplyGenesis(block *model.Block) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "Ledger.ApplyGenesis")
	defer onEnd()

	l.lock.Lock()
	defer l.lock.Unlock()

	if block.Height != model.GenesisHeight {
		return errors.Wrapf(ErrUnexpectedHeight, "genesis block has height %d", block.Height)
	}
	_, found, err := readHeight(l.database)
	if err != nil {
		return err
	}
	if found {
		return errors.WithStack(ErrAlreadyInitialized)
	}
	err = wsvstore.Initialize(l.database)
	if err != nil {
		return err
	}

	temporaryWSV := temporarywsv.New(l.database)
	for i, transaction := range block.Transactions {
		err := temporaryWSV.Apply(transaction, l.execute)
		if err != nil {
			temporaryWSV.Discard()
			return errors.Wrapf(err, "genesis transaction #%d", i)
		}
	}

	blockHash := hashing.BlockHash(block)
	err = l.commit(temporaryWSV, model.GenesisHeight, func(dbTx database.Transaction) error {
		return dbTx.Put(genesisHashKey, blockHash[:])
	})
	if err != nil {
		return err
	}
	log.Infof("Applied genesis block %s with %d transactions, state commitment %s",
		blockHash, len(block.Transactions), temporaryWSV.Commitment())
	return nil
}

// AbortGenesis removes the world state created by block, provided block
// is the genesis block of the ledger and nothing was committed on top
// of it
func (l *Ledger) AbortGenesis(block *model.Block) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	height, found, err := readHeight(l.database)
	if err != nil {
		return err
	}
	if !found {
		return errors.WithStack(ErrNotInitialized)
	}
	if height != model.GenesisHeight {
		return errors.Wrapf(ErrUnexpectedHeight, "cannot abort the genesis block of a ledger of height %d", height)
	}
	genesisHash, err := readGenesisHash(l.database)
	if err != nil {
		return err
	}
	blockHash := hashing.BlockHash(block)
	if genesisHash != blockHash {
		return errors.Errorf("block %s is not the genesis block %s of the ledger", blockHash, genesisHash)
	}

	keys, err := l.keysOf(wsvstore.RootBucket(), metadataBucket)
	if err != nil {
		return err
	}
	dbTx, err := l.database.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()
	for _, key := range keys {
		err := dbTx.Delete(key)
		if err != nil {
			return err
		}
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}
	log.Infof("Aborted genesis block %s: removed %d keys", blockHash, len(keys))
	return nil
}

// ValidateProposal validates proposal on top of the committed world
// state. The returned result is committed with CommitResult or dropped
// with DiscardResult.
func (l *Ledger) ValidateProposal(proposal *model.Proposal) (*Result, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	height, found, err := readHeight(l.database)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	if proposal.Height != height+1 {
		return nil, errors.Wrapf(ErrUnexpectedHeight, "proposal of height %d on top of a ledger of height %d",
			proposal.Height, height)
	}

	temporaryWSV := temporarywsv.New(l.database)
	validated, rejected := l.statefulValidator.Validate(proposal, temporaryWSV)
	result := &Result{
		Proposal:     validated,
		Rejected:     rejected,
		Commitment:   temporaryWSV.Commitment(),
		temporaryWSV: temporaryWSV,
	}
	log.Infof("Proposal %s of height %d stages state commitment %s",
		hashing.ProposalHash(proposal), proposal.Height, result.Commitment)
	return result, nil
}

// CommitResult writes the staged changes of result and advances the
// ledger to the height of its proposal
func (l *Ledger) CommitResult(result *Result) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	height, found, err := readHeight(l.database)
	if err != nil {
		return err
	}
	if !found || result.Proposal.Height != height+1 {
		return errors.WithStack(ErrStaleResult)
	}
	err = l.commit(result.temporaryWSV, result.Proposal.Height, nil)
	if err != nil {
		return err
	}
	log.Infof("Committed proposal of height %d with %d transactions",
		result.Proposal.Height, len(result.Proposal.Transactions))
	return nil
}

// DiscardResult drops the staged changes of result
func (l *Ledger) DiscardResult(result *Result) {
	result.temporaryWSV.Discard()
}

func (l *Ledger) execute(transaction *model.Transaction, command model.Command,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	return l.commandExecutor.Execute(transaction.CreatorAccountID, command, wsvCommand, wsvQuery)
}

// commit writes temporaryWSV and height in a single database
// transaction. extra, if set, adds writes to the same transaction.
func (l *Ledger) commit(temporaryWSV *temporarywsv.TemporaryWSV, height uint64,
	extra func(dbTx database.Transaction) error) error {

	dbTx, err := l.database.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = temporaryWSV.Commit(dbTx)
	if err != nil {
		return err
	}
	err = writeHeight(dbTx, height)
	if err != nil {
		return err
	}
	if extra != nil {
		err = extra(dbTx)
		if err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (l *Ledger) keysOf(buckets ...*database.Bucket) ([]*database.Key, error) {
	var keys []*database.Key
	for _, bucket := range buckets {
		cursor, err := l.database.Cursor(bucket)
		if err != nil {
			return nil, err
		}
		for cursor.Next() {
			key, err := cursor.Key()
			if err != nil {
				cursor.Close()
				return nil, err
			}
			keys = append(keys, key)
		}
		err = cursor.Close()
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}
