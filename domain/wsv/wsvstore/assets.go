package wsvstore

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

func assetKey(assetID string) *database.Key {
	return assetsBucket.Key(database.EncodeComponent(assetID))
}

// InsertAsset creates an asset. Its domain must exist.
func (s *WSVStore) InsertAsset(asset *model.Asset) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	exists, err := s.has(assetKey(asset.AssetID))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrDuplicateAsset, "asset %s already exists", asset.AssetID)
	}
	err = s.checkDomainExists(asset.DomainID)
	if err != nil {
		return err
	}
	return s.put(assetKey(asset.AssetID), serialization.SerializeAsset(asset))
}

// Asset returns the asset with the given id
func (s *WSVStore) Asset(assetID string) (*model.Asset, bool) {
	if !s.isReadable() {
		return nil, false
	}
	assetBytes, found, err := s.get(assetKey(assetID))
	if err != nil {
		log.Debugf("Failed reading asset %s: %s", assetID, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	asset, err := serialization.DeserializeAsset(assetBytes)
	if err != nil {
		log.Errorf("Failed deserializing asset %s: %s", assetID, err)
		return nil, false
	}
	return asset, true
}
