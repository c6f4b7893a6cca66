package temporarywsv

import (
	"bytes"
	"sort"
	"strings"

	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// stagingDataAccessor is a database.DataAccessor that reads through its
// staging layers into reader and writes only into its top layer
type stagingDataAccessor struct {
	reader           database.DataAccessor
	passLayer        *stagingLayer
	transactionLayer *stagingLayer
}

var _ database.DataAccessor = (*stagingDataAccessor)(nil)

func (sda *stagingDataAccessor) topLayer() *stagingLayer {
	if sda.transactionLayer != nil {
		return sda.transactionLayer
	}
	return sda.passLayer
}

// staged returns the newest staged entry of key
func (sda *stagingDataAccessor) staged(key []byte) (*stagedEntry, bool) {
	if sda.transactionLayer != nil {
		if entry, ok := sda.transactionLayer.get(key); ok {
			return entry, true
		}
	}
	return sda.passLayer.get(key)
}

func (sda *stagingDataAccessor) Put(key *database.Key, value []byte) error {
	sda.topLayer().put(key, value)
	return nil
}

func (sda *stagingDataAccessor) Get(key *database.Key) ([]byte, error) {
	if entry, ok := sda.staged(key.Bytes()); ok {
		if entry.isDeleted {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return entry.value, nil
	}
	return sda.reader.Get(key)
}

func (sda *stagingDataAccessor) Has(key *database.Key) (bool, error) {
	if entry, ok := sda.staged(key.Bytes()); ok {
		return !entry.isDeleted, nil
	}
	return sda.reader.Has(key)
}

func (sda *stagingDataAccessor) Delete(key *database.Key) error {
	sda.topLayer().delete(key)
	return nil
}

// Cursor returns a cursor over the merge of the entries of bucket in
// reader and in the staging layers
func (sda *stagingDataAccessor) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	bucketPath := bucket.Path()
	merged := make(map[string][]byte)

	baseCursor, err := sda.reader.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer baseCursor.Close()
	for ok := baseCursor.First(); ok; ok = baseCursor.Next() {
		key, err := baseCursor.Key()
		if err != nil {
			return nil, err
		}
		value, err := baseCursor.Value()
		if err != nil {
			return nil, err
		}
		merged[string(key.Bytes())] = append([]byte{}, value...)
	}

	layers := []*stagingLayer{sda.passLayer}
	if sda.transactionLayer != nil {
		layers = append(layers, sda.transactionLayer)
	}
	for _, layer := range layers {
		for key, entry := range layer.entries {
			if !strings.HasPrefix(key, string(bucketPath)) {
				continue
			}
			if entry.isDeleted {
				delete(merged, key)
				continue
			}
			merged[key] = entry.value
		}
	}

	entries := make([]cursorEntry, 0, len(merged))
	for key, value := range merged {
		entries = append(entries, cursorEntry{
			key:   bucket.Key([]byte(key[len(bucketPath):])),
			value: value,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key.Suffix(), entries[j].key.Suffix()) < 0
	})
	return newStagingCursor(entries), nil
}
