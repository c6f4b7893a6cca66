package ledger

import (
	"encoding/binary"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

var (
	metadataBucket = database.MakeBucket([]byte("ledger"))
	heightKey      = metadataBucket.Key([]byte("height"))
	genesisHashKey = metadataBucket.Key([]byte("genesis-hash"))
)

func readHeight(dataAccessor database.DataAccessor) (height uint64, found bool, err error) {
	heightBytes, err := dataAccessor.Get(heightKey)
	if database.IsNotFoundError(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(heightBytes) != 8 {
		return 0, false, errors.Errorf("malformed ledger height of %d bytes", len(heightBytes))
	}
	return binary.LittleEndian.Uint64(heightBytes), true, nil
}

func writeHeight(dataAccessor database.DataAccessor, height uint64) error {
	var heightBytes [8]byte
	binary.LittleEndian.PutUint64(heightBytes[:], height)
	return dataAccessor.Put(heightKey, heightBytes[:])
}

func readGenesisHash(dataAccessor database.DataAccessor) (model.Hash, error) {
	hashBytes, err := dataAccessor.Get(genesisHashKey)
	if err != nil {
		return model.Hash{}, err
	}
	var hash model.Hash
	if len(hashBytes) != len(hash) {
		return model.Hash{}, errors.Errorf("malformed genesis hash of %d bytes", len(hashBytes))
	}
	copy(hash[:], hashBytes)
	return hash, nil
}
