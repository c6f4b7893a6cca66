package commandexecutor

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/domain/wsv/ruleerrors"
	"github.com/pkg/errors"
)

// commandExecutor maps every command onto the operations of the world
// state view that apply it. It holds no authorization logic.
type commandExecutor struct{}

// New instantiates a new CommandExecutor
func New() model.CommandExecutor {
	return &commandExecutor{}
}

// Execute applies command, issued by creatorAccountID, to wsvCommand.
// wsvQuery reads the same state wsvCommand writes. A refusal of the
// world state view is returned wrapped in ruleerrors.ErrUnexecutableCommand.
func (ce *commandExecutor) Execute(creatorAccountID string, command model.Command,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	if command == nil {
		return errors.Wrap(ruleerrors.ErrUnknownCommand, "cannot execute a nil command")
	}
	log.Tracef("Executing %s by %s", command.Name(), creatorAccountID)
	err := ce.execute(creatorAccountID, command, wsvCommand, wsvQuery)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrUnknownCommand) {
			return err
		}
		return ruleerrors.NewErrUnexecutableCommand(command, err)
	}
	return nil
}

func (ce *commandExecutor) execute(creatorAccountID string, command model.Command,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	switch command := command.(type) {
	case *model.CreateRole:
		err := wsvCommand.InsertRole(command.RoleName)
		if err != nil {
			return err
		}
		return wsvCommand.InsertRolePermissions(command.RoleName, command.Permissions)

	case *model.AppendRolePermissions:
		return wsvCommand.InsertRolePermissions(command.RoleName, command.Permissions)

	case *model.AppendRole:
		return wsvCommand.InsertAccountRole(command.AccountID, command.RoleName)

	case *model.DetachRole:
		return wsvCommand.DeleteAccountRole(command.AccountID, command.RoleName)

	case *model.CreateDomain:
		return wsvCommand.InsertDomain(&model.Domain{
			DomainID:    command.DomainID,
			DefaultRole: command.DefaultRole,
		})

	case *model.CreateAccount:
		return ce.createAccount(command, wsvCommand, wsvQuery)

	case *model.SetAccountDetail:
		return wsvCommand.SetAccountKV(command.AccountID, creatorAccountID, command.Key, command.Value)

	case *model.GrantPermission:
		return wsvCommand.InsertAccountGrantablePermission(command.AccountID, creatorAccountID, command.Permission)

	case *model.RevokePermission:
		return wsvCommand.DeleteAccountGrantablePermission(command.AccountID, creatorAccountID, command.Permission)

	case *model.SetQuorum:
		return ce.setQuorum(command, wsvCommand, wsvQuery)

	case *model.AddPeer:
		if command.Peer == nil {
			return errors.New("AddPeer has no peer")
		}
		return wsvCommand.InsertPeer(command.Peer)

	case *model.RemovePeer:
		return wsvCommand.DeletePeer(&model.Peer{PublicKey: command.PublicKey})

	case *model.CreateAsset:
		return wsvCommand.InsertAsset(&model.Asset{
			AssetID:   model.AssetID(command.AssetName, command.DomainID),
			DomainID:  command.DomainID,
			Precision: command.Precision,
		})

	default:
		return errors.Wrapf(ruleerrors.ErrUnknownCommand, "cannot execute a command of type %T", command)
	}
}

// createAccount inserts the account and attaches the default role of
// its domain to it
func (ce *commandExecutor) createAccount(command *model.CreateAccount,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	domain, ok := wsvQuery.Domain(command.DomainID)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrMissingDomain, "domain %s does not exist", command.DomainID)
	}

	accountID := model.AccountID(command.AccountName, command.DomainID)
	err := wsvCommand.InsertAccount(&model.Account{
		AccountID: accountID,
		DomainID:  command.DomainID,
		Quorum:    model.DefaultQuorum,
		Detail:    model.NewAccountDetail(),
	})
	if err != nil {
		return err
	}
	return wsvCommand.InsertAccountRole(accountID, domain.DefaultRole)
}

func (ce *commandExecutor) setQuorum(command *model.SetQuorum,
	wsvCommand model.WSVCommand, wsvQuery model.WSVQuery) error {

	account, ok := wsvQuery.Account(command.AccountID)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrMissingAccount, "account %s does not exist", command.AccountID)
	}
	account.Quorum = command.Quorum
	return wsvCommand.UpdateAccount(account)
}
