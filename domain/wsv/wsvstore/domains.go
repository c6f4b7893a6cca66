package wsvstore

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

func domainKey(domainID string) *database.Key {
	return domainsBucket.Key(database.EncodeComponent(domainID))
}

// InsertDomain creates a domain. Its default role must exist.
func (s *WSVStore) InsertDomain(domain *model.Domain) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	exists, err := s.has(domainKey(domain.DomainID))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrDuplicateDomain, "domain %s already exists", domain.DomainID)
	}
	err = s.checkRoleExists(domain.DefaultRole)
	if err != nil {
		return err
	}
	return s.put(domainKey(domain.DomainID), serialization.SerializeDomain(domain))
}

func (s *WSVStore) checkDomainExists(domainID string) error {
	exists, err := s.has(domainKey(domainID))
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ruleerrors.ErrMissingDomain, "domain %s does not exist", domainID)
	}
	return nil
}

// Domain returns the domain with the given id
func (s *WSVStore) Domain(domainID string) (*model.Domain, bool) {
	if !s.isReadable() {
		return nil, false
	}
	domainBytes, found, err := s.get(domainKey(domainID))
	if err != nil {
		log.Debugf("Failed reading domain %s: %s", domainID, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	domain, err := serialization.DeserializeDomain(domainBytes)
	if err != nil {
		log.Errorf("Failed deserializing domain %s: %s", domainID, err)
		return nil, false
	}
	return domain, true
}
