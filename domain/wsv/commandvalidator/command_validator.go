package commandvalidator

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/pkg/errors"
)

// commandValidator decides whether an executed command was allowed. It
// runs after the command executed, so it sees the state the command
// produced. Permissions are judged on what the creator held before the
// command, so a command cannot authorize itself.
type commandValidator struct{}

// New instantiates a new CommandValidator
func New() model.CommandValidator {
	return &commandValidator{}
}

// Validate checks command of transaction against creatorPermissions and
// the staged state in wsvQuery. A violation is returned wrapped in
// ruleerrors.ErrInvalidCommand.
func (cv *commandValidator) Validate(transaction *model.Transaction, command model.Command,
	creatorPermissions map[string]struct{}, wsvQuery model.WSVQuery) error {

	if command == nil {
		return errors.Wrap(ruleerrors.ErrUnknownCommand, "cannot validate a nil command")
	}
	err := cv.validate(transaction, command, creatorPermissions, wsvQuery)
	if err != nil {
		log.Debugf("Command %s of %s is invalid: %s", command.Name(), transaction.CreatorAccountID, err)
		log.Tracef("Invalid command: %s", spew.Sdump(command))
		return ruleerrors.NewErrInvalidCommand(command, err)
	}
	return nil
}

func (cv *commandValidator) validate(transaction *model.Transaction, command model.Command,
	creatorPermissions map[string]struct{}, wsvQuery model.WSVQuery) error {

	creator := transaction.CreatorAccountID
	creatorAccount, ok := wsvQuery.Account(creator)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrMissingCreatorAccount, "account %s does not exist", creator)
	}
	err := checkQuorum(transaction, creatorAccount)
	if err != nil {
		return err
	}
	c := &validationContext{
		creator:     creator,
		permissions: creatorPermissions,
		wsvQuery:    wsvQuery,
	}

	switch command := command.(type) {
	case *model.CreateRole:
		err := c.requirePermission(model.CanCreateRole)
		if err != nil {
			return err
		}
		return c.requireAllPermissions(command.Permissions)

	case *model.AppendRolePermissions:
		err := c.requirePermission(model.CanCreateRole)
		if err != nil {
			return err
		}
		return c.requireAllPermissions(command.Permissions)

	case *model.AppendRole:
		err := c.requirePermission(model.CanAppendRole)
		if err != nil {
			return err
		}
		rolePermissions, ok := wsvQuery.RolePermissions(command.RoleName)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrStoreUnavailable, "cannot read the permissions of role %s",
				command.RoleName)
		}
		return c.requireAllPermissions(rolePermissions)

	case *model.DetachRole:
		return c.requirePermission(model.CanDetachRole)

	case *model.CreateDomain:
		return c.requirePermission(model.CanCreateDomain)

	case *model.CreateAccount:
		return c.requirePermission(model.CanCreateAccount)

	case *model.SetAccountDetail:
		return c.validateSetAccountDetail(command)

	case *model.GrantPermission:
		return c.validateGrantPermission(command)

	case *model.RevokePermission:
		err := checkGrantable(command.Permission)
		if err != nil {
			return err
		}
		return c.requirePermission(model.CanGrantPermission(command.Permission))

	case *model.SetQuorum:
		return c.validateSetQuorum(command)

	case *model.AddPeer:
		err := c.requirePermission(model.CanAddPeer)
		if err != nil {
			return err
		}
		return checkPeerKey(command.Peer)

	case *model.RemovePeer:
		return c.requirePermission(model.CanRemovePeer)

	case *model.CreateAsset:
		return c.requirePermission(model.CanCreateAsset)

	default:
		return errors.Wrapf(ruleerrors.ErrUnknownCommand, "cannot validate a command of type %T", command)
	}
}

// checkQuorum checks that transaction has at least as many distinct
// signers as both its own quorum and the quorum of its creator require
func checkQuorum(transaction *model.Transaction, creatorAccount *model.Account) error {
	required := creatorAccount.Quorum
	if transaction.Quorum > required {
		required = transaction.Quorum
	}
	signerCount := transaction.SignerCount()
	if uint32(signerCount) < required {
		return errors.Wrapf(ruleerrors.ErrQuorumNotMet, "transaction of %s has %d distinct signers, "+
			"%d are required", transaction.CreatorAccountID, signerCount, required)
	}
	return nil
}

func checkGrantable(permission string) error {
	if _, ok := model.GrantablePermissions[permission]; !ok {
		return errors.Wrapf(ruleerrors.ErrNotGrantable, "permission %s is not grantable", permission)
	}
	return nil
}

func checkPeerKey(peer *model.Peer) error {
	if peer == nil {
		return errors.Wrap(ruleerrors.ErrInvalidPeerKey, "peer is missing")
	}
	_, err := secp256k1.DeserializeSchnorrPubKey(peer.PublicKey)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrInvalidPeerKey, "public key of peer %s: %s", peer.Address, err)
	}
	return nil
}
