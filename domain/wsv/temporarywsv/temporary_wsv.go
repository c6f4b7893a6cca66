package temporarywsv

import (
	"github.com/kaspanet/wsvd/domain/wsv/hashing"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/wsvstore"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// TemporaryWSV is a staging overlay of the world state view used by a
// single validation pass. Nothing it stages reaches the underlying data
// accessor unless its owner calls Commit.
//
// A TemporaryWSV is not safe for concurrent use.
type TemporaryWSV struct {
	dataAccessor *stagingDataAccessor
	store        *wsvstore.WSVStore
	isCommitted  bool
}

var _ model.TemporaryWSV = (*TemporaryWSV)(nil)

// New instantiates a new TemporaryWSV reading through to reader. The
// caller keeps ownership of reader.
func New(reader database.DataAccessor) *TemporaryWSV {
	dataAccessor := &stagingDataAccessor{
		reader:    reader,
		passLayer: newStagingLayer(),
	}
	return &TemporaryWSV{
		dataAccessor: dataAccessor,
		store:        wsvstore.New(dataAccessor),
	}
}

// Apply runs commandFunc over every command of transaction in order. If
// all of them succeed, the changes they staged are kept and Apply
// returns nil. Otherwise every change staged by transaction is dropped,
// and the error of the failing command is returned wrapped in
// ruleerrors.ErrCommandFailed. Changes of previously applied
// transactions are never dropped.
func (t *TemporaryWSV) Apply(transaction *model.Transaction, commandFunc model.CommandFunc) error {
	if t.isCommitted {
		return errors.New("cannot apply a transaction to a committed temporary world state view")
	}
	if t.dataAccessor.transactionLayer != nil {
		return errors.New("cannot apply a transaction while another is being applied")
	}

	transactionLayer := newStagingLayer()
	t.dataAccessor.transactionLayer = transactionLayer
	defer func() { t.dataAccessor.transactionLayer = nil }()

	for i, command := range transaction.Commands {
		err := commandFunc(transaction, command, t.store, t.store)
		if err != nil {
			log.Debugf("Dropping %d staged changes of a transaction by %s: command #%d failed",
				len(transactionLayer.entries), transaction.CreatorAccountID, i)
			return ruleerrors.NewErrCommandFailed(i, err)
		}
	}
	transactionLayer.mergeInto(t.dataAccessor.passLayer)
	return nil
}

// Query returns a read view over the staged state
func (t *TemporaryWSV) Query() model.WSVQuery {
	return t.store
}

// Commit writes every staged change into dbTx, in key order. It is
// called only by the owner of the underlying data accessor, and only
// once.
func (t *TemporaryWSV) Commit(dbTx database.DataAccessor) error {
	if t.isCommitted {
		return errors.New("attempt to call Commit on an already committed temporary world state view")
	}
	passLayer := t.dataAccessor.passLayer
	for _, key := range passLayer.sortedKeys() {
		entry := passLayer.entries[key]
		var err error
		if entry.isDeleted {
			err = dbTx.Delete(entry.key)
		} else {
			err = dbTx.Put(entry.key, entry.value)
		}
		if err != nil {
			return errors.Wrapf(err, "failed committing key %s", key)
		}
	}
	log.Debugf("Committed %d staged changes", len(passLayer.entries))
	t.isCommitted = true
	return nil
}

// Discard drops every staged change
func (t *TemporaryWSV) Discard() {
	log.Debugf("Discarding %d staged changes", len(t.dataAccessor.passLayer.entries))
	t.dataAccessor.passLayer = newStagingLayer()
}

// StagedEntry is a single change staged in a TemporaryWSV
type StagedEntry struct {
	Key       string
	Value     []byte
	IsDeleted bool
}

// StagedEntries returns the staged changes, in key order
func (t *TemporaryWSV) StagedEntries() []*StagedEntry {
	passLayer := t.dataAccessor.passLayer
	entries := make([]*StagedEntry, 0, len(passLayer.entries))
	for _, key := range passLayer.sortedKeys() {
		entry := passLayer.entries[key]
		entries = append(entries, &StagedEntry{
			Key:       key,
			Value:     append([]byte{}, entry.value...),
			IsDeleted: entry.isDeleted,
		})
	}
	return entries
}

// Commitment returns an order independent commitment to the staged
// changes. Two passes staging the same changes have equal commitments.
func (t *TemporaryWSV) Commitment() model.Hash {
	commitment := hashing.NewStateCommitment()
	for key, entry := range t.dataAccessor.passLayer.entries {
		if entry.isDeleted {
			commitment.AddDelete([]byte(key))
			continue
		}
		commitment.AddPut([]byte(key), entry.value)
	}
	return commitment.Finalize()
}
