package serialization

import (
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

// SerializeSchemaVersion serializes the schema version marker
func SerializeSchemaVersion(version uint64) []byte {
	return appendVarint(nil, 1, version)
}

// DeserializeSchemaVersion deserializes the schema version marker
func DeserializeSchemaVersion(data []byte) (uint64, error) {
	fields, err := readFields(data)
	if err != nil {
		return 0, err
	}
	for _, f := range fields {
		if f.number == 1 {
			return f.varint, nil
		}
	}
	return 0, errors.New("schema version marker has no version")
}

// SerializeDomain serializes a domain record
func SerializeDomain(domain *model.Domain) []byte {
	b := appendString(nil, 1, domain.DomainID)
	return appendString(b, 2, domain.DefaultRole)
}

// DeserializeDomain deserializes a domain record
func DeserializeDomain(data []byte) (*model.Domain, error) {
	fields, err := readFields(data)
	if err != nil {
		return nil, errors.Wrap(err, "malformed domain record")
	}
	domain := &model.Domain{}
	for _, f := range fields {
		switch f.number {
		case 1:
			domain.DomainID = string(f.bytes)
		case 2:
			domain.DefaultRole = string(f.bytes)
		}
	}
	return domain, nil
}

// SerializeAccount serializes an account record. Detail entries are
// written sorted by writer and key so equal accounts serialize to equal
// bytes. A writer whose namespace is empty gets an entry without a key.
func SerializeAccount(account *model.Account) []byte {
	b := appendString(nil, 1, account.AccountID)
	b = appendString(b, 2, account.DomainID)
	b = appendVarint(b, 3, uint64(account.Quorum))
	for _, writer := range account.Detail.Writers() {
		keys := account.Detail.Keys(writer)
		if len(keys) == 0 {
			b = appendBytes(b, 4, appendString(nil, 1, writer))
			continue
		}
		for _, key := range keys {
			entry := appendString(nil, 1, writer)
			entry = appendString(entry, 2, key)
			entry = appendString(entry, 3, account.Detail[writer][key])
			b = appendBytes(b, 4, entry)
		}
	}
	return b
}

// DeserializeAccount deserializes an account record
func DeserializeAccount(data []byte) (*model.Account, error) {
	fields, err := readFields(data)
	if err != nil {
		return nil, errors.Wrap(err, "malformed account record")
	}
	account := &model.Account{Detail: model.NewAccountDetail()}
	for _, f := range fields {
		switch f.number {
		case 1:
			account.AccountID = string(f.bytes)
		case 2:
			account.DomainID = string(f.bytes)
		case 3:
			account.Quorum = uint32(f.varint)
		case 4:
			err := deserializeDetailEntry(f.bytes, account.Detail)
			if err != nil {
				return nil, errors.Wrapf(err, "malformed detail of account %s", account.AccountID)
			}
		}
	}
	return account, nil
}

func deserializeDetailEntry(data []byte, detail model.AccountDetail) error {
	fields, err := readFields(data)
	if err != nil {
		return err
	}
	var writer, key, value string
	hasKey := false
	for _, f := range fields {
		switch f.number {
		case 1:
			writer = string(f.bytes)
		case 2:
			key = string(f.bytes)
			hasKey = true
		case 3:
			value = string(f.bytes)
		}
	}
	if !hasKey {
		if _, ok := detail[writer]; !ok {
			detail[writer] = make(map[string]string)
		}
		return nil
	}
	detail.Set(writer, key, value)
	return nil
}

// SerializePeer serializes a peer record
func SerializePeer(peer *model.Peer) []byte {
	b := appendString(nil, 1, peer.Address)
	return appendBytes(b, 2, peer.PublicKey)
}

// DeserializePeer deserializes a peer record
func DeserializePeer(data []byte) (*model.Peer, error) {
	fields, err := readFields(data)
	if err != nil {
		return nil, errors.Wrap(err, "malformed peer record")
	}
	peer := &model.Peer{PublicKey: []byte{}}
	for _, f := range fields {
		switch f.number {
		case 1:
			peer.Address = string(f.bytes)
		case 2:
			peer.PublicKey = append([]byte{}, f.bytes...)
		}
	}
	return peer, nil
}

// SerializeAsset serializes an asset record
func SerializeAsset(asset *model.Asset) []byte {
	b := appendString(nil, 1, asset.AssetID)
	b = appendString(b, 2, asset.DomainID)
	return appendVarint(b, 3, uint64(asset.Precision))
}

// DeserializeAsset deserializes an asset record
func DeserializeAsset(data []byte) (*model.Asset, error) {
	fields, err := readFields(data)
	if err != nil {
		return nil, errors.Wrap(err, "malformed asset record")
	}
	asset := &model.Asset{}
	for _, f := range fields {
		switch f.number {
		case 1:
			asset.AssetID = string(f.bytes)
		case 2:
			asset.DomainID = string(f.bytes)
		case 3:
			asset.Precision = uint32(f.varint)
		}
	}
	return asset, nil
}
