package wsvstore

import (
	"encoding/hex"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

func peerKey(publicKey []byte) *database.Key {
	return peersBucket.Key(database.EncodeComponent(string(publicKey)))
}

// InsertPeer adds a peer to the peer registry
func (s *WSVStore) InsertPeer(peer *model.Peer) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	exists, err := s.has(peerKey(peer.PublicKey))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrDuplicatePeer, "peer %s already exists",
			hex.EncodeToString(peer.PublicKey))
	}
	return s.put(peerKey(peer.PublicKey), serialization.SerializePeer(peer))
}

// DeletePeer removes the peer with the public key of peer from the peer
// registry. Removing a peer that is not registered is a no-op.
func (s *WSVStore) DeletePeer(peer *model.Peer) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	return s.delete(peerKey(peer.PublicKey))
}

// Peers returns all registered peers, sorted by public key
func (s *WSVStore) Peers() ([]*model.Peer, bool) {
	if !s.isReadable() {
		return nil, false
	}
	peerBytes, err := s.values(peersBucket)
	if err != nil {
		log.Debugf("Failed reading peers: %s", err)
		return nil, false
	}
	peers := make([]*model.Peer, len(peerBytes))
	for i, bytes := range peerBytes {
		peers[i], err = serialization.DeserializePeer(bytes)
		if err != nil {
			log.Errorf("Failed deserializing a peer: %s", err)
			return nil, false
		}
	}
	return peers, true
}
