package blockjson

import (
	"encoding/hex"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

type peerJSON struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// commandJSON is the tagged form of a command. Type selects the command
// kind and only the fields of that kind are set.
type commandJSON struct {
	Type        string    `json:"type"`
	RoleName    string    `json:"roleName,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	Permission  string    `json:"permission,omitempty"`
	AccountID   string    `json:"accountId,omitempty"`
	AccountName string    `json:"accountName,omitempty"`
	DomainID    string    `json:"domainId,omitempty"`
	DefaultRole string    `json:"defaultRole,omitempty"`
	Key         string    `json:"key,omitempty"`
	Value       string    `json:"value,omitempty"`
	Quorum      uint32    `json:"quorum,omitempty"`
	Peer        *peerJSON `json:"peer,omitempty"`
	PublicKey   string    `json:"publicKey,omitempty"`
	AssetName   string    `json:"assetName,omitempty"`
	Precision   uint32    `json:"precision,omitempty"`
}

func commandToJSON(command model.Command) (*commandJSON, error) {
	if command == nil {
		return nil, errors.New("cannot encode a nil command")
	}
	commandJSON := &commandJSON{Type: command.Name()}
	switch command := command.(type) {
	case *model.CreateRole:
		commandJSON.RoleName = command.RoleName
		commandJSON.Permissions = command.Permissions
	case *model.AppendRolePermissions:
		commandJSON.RoleName = command.RoleName
		commandJSON.Permissions = command.Permissions
	case *model.AppendRole:
		commandJSON.AccountID = command.AccountID
		commandJSON.RoleName = command.RoleName
	case *model.DetachRole:
		commandJSON.AccountID = command.AccountID
		commandJSON.RoleName = command.RoleName
	case *model.CreateDomain:
		commandJSON.DomainID = command.DomainID
		commandJSON.DefaultRole = command.DefaultRole
	case *model.CreateAccount:
		commandJSON.AccountName = command.AccountName
		commandJSON.DomainID = command.DomainID
	case *model.SetAccountDetail:
		commandJSON.AccountID = command.AccountID
		commandJSON.Key = command.Key
		commandJSON.Value = command.Value
	case *model.GrantPermission:
		commandJSON.AccountID = command.AccountID
		commandJSON.Permission = command.Permission
	case *model.RevokePermission:
		commandJSON.AccountID = command.AccountID
		commandJSON.Permission = command.Permission
	case *model.SetQuorum:
		commandJSON.AccountID = command.AccountID
		commandJSON.Quorum = command.Quorum
	case *model.AddPeer:
		if command.Peer == nil {
			return nil, errors.New("AddPeer has no peer")
		}
		commandJSON.Peer = &peerJSON{
			Address:   command.Peer.Address,
			PublicKey: hex.EncodeToString(command.Peer.PublicKey),
		}
	case *model.RemovePeer:
		commandJSON.PublicKey = hex.EncodeToString(command.PublicKey)
	case *model.CreateAsset:
		commandJSON.AssetName = command.AssetName
		commandJSON.DomainID = command.DomainID
		commandJSON.Precision = command.Precision
	default:
		return nil, errors.Errorf("cannot encode a command of type %T", command)
	}
	return commandJSON, nil
}

func (c *commandJSON) toCommand() (model.Command, error) {
	switch c.Type {
	case model.CreateRoleName:
		return &model.CreateRole{RoleName: c.RoleName, Permissions: c.permissions()}, nil
	case model.AppendRolePermissionsName:
		return &model.AppendRolePermissions{RoleName: c.RoleName, Permissions: c.permissions()}, nil
	case model.AppendRoleName:
		return &model.AppendRole{AccountID: c.AccountID, RoleName: c.RoleName}, nil
	case model.DetachRoleName:
		return &model.DetachRole{AccountID: c.AccountID, RoleName: c.RoleName}, nil
	case model.CreateDomainName:
		return &model.CreateDomain{DomainID: c.DomainID, DefaultRole: c.DefaultRole}, nil
	case model.CreateAccountName:
		return &model.CreateAccount{AccountName: c.AccountName, DomainID: c.DomainID}, nil
	case model.SetAccountDetailName:
		return &model.SetAccountDetail{AccountID: c.AccountID, Key: c.Key, Value: c.Value}, nil
	case model.GrantPermissionName:
		return &model.GrantPermission{AccountID: c.AccountID, Permission: c.Permission}, nil
	case model.RevokePermissionName:
		return &model.RevokePermission{AccountID: c.AccountID, Permission: c.Permission}, nil
	case model.SetQuorumName:
		return &model.SetQuorum{AccountID: c.AccountID, Quorum: c.Quorum}, nil
	case model.AddPeerName:
		if c.Peer == nil {
			return nil, errors.New("AddPeer has no peer")
		}
		publicKey, err := hex.DecodeString(c.Peer.PublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "public key of peer %s", c.Peer.Address)
		}
		return &model.AddPeer{Peer: &model.Peer{Address: c.Peer.Address, PublicKey: publicKey}}, nil
	case model.RemovePeerName:
		publicKey, err := hex.DecodeString(c.PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "public key of RemovePeer")
		}
		return &model.RemovePeer{PublicKey: publicKey}, nil
	case model.CreateAssetName:
		return &model.CreateAsset{AssetName: c.AssetName, DomainID: c.DomainID, Precision: c.Precision}, nil
	default:
		return nil, errors.Errorf("unknown command type %q", c.Type)
	}
}

func (c *commandJSON) permissions() []string {
	if c.Permissions == nil {
		return []string{}
	}
	return c.Permissions
}
