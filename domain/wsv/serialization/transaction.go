package serialization

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

// TransactionPayloadBytes returns the canonical encoding of everything
// in transaction except its signatures
func TransactionPayloadBytes(transaction *model.Transaction) []byte {
	b := appendString(nil, 1, transaction.CreatorAccountID)
	b = appendVarint(b, 2, uint64(transaction.CreatedTime))
	b = appendVarint(b, 3, uint64(transaction.Quorum))
	for _, command := range transaction.Commands {
		b = appendBytes(b, 4, CommandBytes(command))
	}
	return b
}

// CommandBytes returns the canonical encoding of command. The command
// name is always field 1.
func CommandBytes(command model.Command) []byte {
	b := appendString(nil, 1, command.Name())
	switch command := command.(type) {
	case *model.CreateRole:
		b = appendString(b, 2, command.RoleName)
		b = appendStrings(b, 3, command.Permissions)
	case *model.AppendRolePermissions:
		b = appendString(b, 2, command.RoleName)
		b = appendStrings(b, 3, command.Permissions)
	case *model.AppendRole:
		b = appendString(b, 2, command.AccountID)
		b = appendString(b, 3, command.RoleName)
	case *model.DetachRole:
		b = appendString(b, 2, command.AccountID)
		b = appendString(b, 3, command.RoleName)
	case *model.CreateDomain:
		b = appendString(b, 2, command.DomainID)
		b = appendString(b, 3, command.DefaultRole)
	case *model.CreateAccount:
		b = appendString(b, 2, command.AccountName)
		b = appendString(b, 3, command.DomainID)
	case *model.SetAccountDetail:
		b = appendString(b, 2, command.AccountID)
		b = appendString(b, 3, command.Key)
		b = appendString(b, 4, command.Value)
	case *model.GrantPermission:
		b = appendString(b, 2, command.AccountID)
		b = appendString(b, 3, command.Permission)
	case *model.RevokePermission:
		b = appendString(b, 2, command.AccountID)
		b = appendString(b, 3, command.Permission)
	case *model.SetQuorum:
		b = appendString(b, 2, command.AccountID)
		b = appendVarint(b, 3, uint64(command.Quorum))
	case *model.AddPeer:
		if command.Peer != nil {
			b = appendBytes(b, 2, SerializePeer(command.Peer))
		}
	case *model.RemovePeer:
		b = appendBytes(b, 2, command.PublicKey)
	case *model.CreateAsset:
		b = appendString(b, 2, command.AssetName)
		b = appendString(b, 3, command.DomainID)
		b = appendVarint(b, 4, uint64(command.Precision))
	default:
		panic(errors.Errorf("unknown command type %T", command))
	}
	return b
}
