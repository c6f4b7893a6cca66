package wsvstore

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// SchemaVersion is the version of the key layout written by this package
const SchemaVersion = 1

var (
	rootBucket                 = database.MakeBucket([]byte("wsv"))
	schemaVersionKey           = rootBucket.Key([]byte("schema-version"))
	rolesBucket                = rootBucket.Bucket([]byte("roles"))
	rolePermissionsBucket      = rootBucket.Bucket([]byte("role-permissions"))
	domainsBucket              = rootBucket.Bucket([]byte("domains"))
	accountsBucket             = rootBucket.Bucket([]byte("accounts"))
	accountRolesBucket         = rootBucket.Bucket([]byte("account-roles"))
	grantablePermissionsBucket = rootBucket.Bucket([]byte("grantable-permissions"))
	peersBucket                = rootBucket.Bucket([]byte("peers"))
	assetsBucket               = rootBucket.Bucket([]byte("assets"))
)

// RootBucket returns the bucket every key of the world state view lives in
func RootBucket() *database.Bucket {
	return rootBucket
}

// WSVStore is the world state view over a data accessor. It implements
// both model.WSVCommand and model.WSVQuery, enforcing the referential
// integrity of the state on every write.
type WSVStore struct {
	dataAccessor database.DataAccessor
}

// New instantiates a new WSVStore over the given data accessor. The
// caller keeps ownership of dataAccessor.
func New(dataAccessor database.DataAccessor) *WSVStore {
	return &WSVStore{dataAccessor: dataAccessor}
}

var _ model.WSVCommand = (*WSVStore)(nil)
var _ model.WSVQuery = (*WSVStore)(nil)

// Initialize writes the schema marker into dataAccessor. Initializing an
// initialized store is a no-op.
func Initialize(dataAccessor database.DataAccessor) error {
	initialized, err := IsInitialized(dataAccessor)
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}
	log.Debugf("Writing schema version %d", SchemaVersion)
	return dataAccessor.Put(schemaVersionKey, serialization.SerializeSchemaVersion(SchemaVersion))
}

// IsInitialized returns whether dataAccessor holds a schema marker of a
// supported version
func IsInitialized(dataAccessor database.DataAccessor) (bool, error) {
	versionBytes, err := dataAccessor.Get(schemaVersionKey)
	if database.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	version, err := serialization.DeserializeSchemaVersion(versionBytes)
	if err != nil {
		return false, err
	}
	if version != SchemaVersion {
		return false, errors.Errorf("unsupported schema version %d, expected %d", version, SchemaVersion)
	}
	return true, nil
}

func unavailable(err error) error {
	return errors.Wrapf(ruleerrors.ErrStoreUnavailable, "%s", err)
}

// checkWritable is called by every write before any other check
func (s *WSVStore) checkWritable() error {
	initialized, err := IsInitialized(s.dataAccessor)
	if err != nil {
		return unavailable(err)
	}
	if !initialized {
		return errors.Wrap(ruleerrors.ErrStoreUninitialized, "the world state view has no schema")
	}
	return nil
}

// isReadable is called by every query. Queries on an unreadable store
// return nothing.
func (s *WSVStore) isReadable() bool {
	initialized, err := IsInitialized(s.dataAccessor)
	if err != nil {
		log.Debugf("World state view is unavailable: %s", err)
		return false
	}
	return initialized
}

func (s *WSVStore) has(key *database.Key) (bool, error) {
	exists, err := s.dataAccessor.Has(key)
	if err != nil {
		return false, unavailable(err)
	}
	return exists, nil
}

func (s *WSVStore) put(key *database.Key, value []byte) error {
	err := s.dataAccessor.Put(key, value)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// putAll writes value under every one of keys. Over a database.Database
// the writes share a single database transaction, so that either all of
// them or none take place. Other accessors are expected to discard the
// writes of a failed call themselves.
func (s *WSVStore) putAll(keys []*database.Key, value []byte) error {
	db, ok := s.dataAccessor.(database.Database)
	if !ok {
		for _, key := range keys {
			err := s.put(key, value)
			if err != nil {
				return err
			}
		}
		return nil
	}

	dbTx, err := db.Begin()
	if err != nil {
		return unavailable(err)
	}
	defer dbTx.RollbackUnlessClosed()
	for _, key := range keys {
		err := dbTx.Put(key, value)
		if err != nil {
			return unavailable(err)
		}
	}
	err = dbTx.Commit()
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *WSVStore) delete(key *database.Key) error {
	err := s.dataAccessor.Delete(key)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// get returns the value of key, or false if key does not exist
func (s *WSVStore) get(key *database.Key) ([]byte, bool, error) {
	value, err := s.dataAccessor.Get(key)
	if database.IsNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// components returns the decoded suffixes of all the keys in bucket,
// in key order
func (s *WSVStore) components(bucket *database.Bucket) ([]string, error) {
	cursor, err := s.dataAccessor.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	components := []string{}
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		component, err := database.DecodeComponent(key.Suffix())
		if err != nil {
			return nil, errors.Wrapf(err, "malformed key %s", key)
		}
		components = append(components, component)
	}
	return components, nil
}

// values returns the values of all the keys in bucket, in key order
func (s *WSVStore) values(bucket *database.Bucket) ([][]byte, error) {
	cursor, err := s.dataAccessor.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	values := [][]byte{}
	for ok := cursor.First(); ok; ok = cursor.Next() {
		value, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		values = append(values, append([]byte{}, value...))
	}
	return values, nil
}
