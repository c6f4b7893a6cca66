package wsvstore

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/kaspanet/wsvd/domain/wsv/serialization"
	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

func accountKey(accountID string) *database.Key {
	return accountsBucket.Key(database.EncodeComponent(accountID))
}

// InsertAccount creates an account. Its domain must exist.
func (s *WSVStore) InsertAccount(account *model.Account) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	exists, err := s.has(accountKey(account.AccountID))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrDuplicateAccount, "account %s already exists", account.AccountID)
	}
	err = s.checkDomainExists(account.DomainID)
	if err != nil {
		return err
	}
	return s.put(accountKey(account.AccountID), serialization.SerializeAccount(account))
}

// UpdateAccount overwrites an existing account
func (s *WSVStore) UpdateAccount(account *model.Account) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	err = s.checkAccountExists(account.AccountID)
	if err != nil {
		return err
	}
	return s.put(accountKey(account.AccountID), serialization.SerializeAccount(account))
}

// SetAccountKV sets key=value inside the namespace of writerAccountID in
// the detail store of accountID. It does not check that the writer is
// allowed to do so.
func (s *WSVStore) SetAccountKV(accountID, writerAccountID, key, value string) error {
	err := s.checkWritable()
	if err != nil {
		return err
	}
	account, found, err := s.account(accountID)
	if err != nil {
		return unavailable(err)
	}
	if !found {
		return errors.Wrapf(ruleerrors.ErrMissingAccount, "account %s does not exist", accountID)
	}
	account.Detail.Set(writerAccountID, key, value)
	return s.put(accountKey(accountID), serialization.SerializeAccount(account))
}

func (s *WSVStore) checkAccountExists(accountID string) error {
	exists, err := s.has(accountKey(accountID))
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ruleerrors.ErrMissingAccount, "account %s does not exist", accountID)
	}
	return nil
}

func (s *WSVStore) account(accountID string) (*model.Account, bool, error) {
	accountBytes, found, err := s.get(accountKey(accountID))
	if err != nil || !found {
		return nil, false, err
	}
	account, err := serialization.DeserializeAccount(accountBytes)
	if err != nil {
		return nil, false, err
	}
	return account, true, nil
}

// Account returns the account with the given id
func (s *WSVStore) Account(accountID string) (*model.Account, bool) {
	if !s.isReadable() {
		return nil, false
	}
	account, found, err := s.account(accountID)
	if err != nil {
		log.Debugf("Failed reading account %s: %s", accountID, err)
		return nil, false
	}
	return account, found
}

// AccountDetail returns the detail store of the account with the given id
func (s *WSVStore) AccountDetail(accountID string) (model.AccountDetail, bool) {
	account, found := s.Account(accountID)
	if !found {
		return nil, false
	}
	return account.Detail, true
}
