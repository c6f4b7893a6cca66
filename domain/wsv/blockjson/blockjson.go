package blockjson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

type signatureJSON struct {
	PublicKey string `json:"publicKey"`
	Signature string `json:"signature"`
}

type transactionJSON struct {
	CreatorAccountID string           `json:"creatorAccountId"`
	CreatedTime      int64            `json:"createdTime"`
	Quorum           uint32           `json:"quorum,omitempty"`
	Commands         []*commandJSON   `json:"commands"`
	Signatures       []*signatureJSON `json:"signatures"`
}

type blockJSON struct {
	Height       uint64             `json:"height"`
	PrevHash     string             `json:"prevHash"`
	CreatedTime  int64              `json:"createdTime"`
	Transactions []*transactionJSON `json:"transactions"`
}

type proposalJSON struct {
	Height       uint64             `json:"height"`
	CreatedTime  int64              `json:"createdTime"`
	Transactions []*transactionJSON `json:"transactions"`
}

// MarshalBlock returns the JSON form of block
func MarshalBlock(block *model.Block) ([]byte, error) {
	transactions, err := transactionsToJSON(block.Transactions)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(&blockJSON{
		Height:       block.Height,
		PrevHash:     hex.EncodeToString(block.PrevHash),
		CreatedTime:  block.CreatedTime,
		Transactions: transactions,
	}, "", "  ")
}

// UnmarshalBlock parses the JSON form of a block. Unknown fields are
// an error.
func UnmarshalBlock(data []byte) (*model.Block, error) {
	decoded := &blockJSON{}
	err := decodeStrict(data, decoded)
	if err != nil {
		return nil, errors.Wrap(err, "malformed block")
	}
	prevHash, err := hex.DecodeString(decoded.PrevHash)
	if err != nil {
		return nil, errors.Wrap(err, "malformed block prevHash")
	}
	transactions, err := transactionsFromJSON(decoded.Transactions)
	if err != nil {
		return nil, err
	}
	return &model.Block{
		Height:       decoded.Height,
		PrevHash:     prevHash,
		CreatedTime:  decoded.CreatedTime,
		Transactions: transactions,
	}, nil
}

// MarshalProposal returns the JSON form of proposal
func MarshalProposal(proposal *model.Proposal) ([]byte, error) {
	transactions, err := transactionsToJSON(proposal.Transactions)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(&proposalJSON{
		Height:       proposal.Height,
		CreatedTime:  proposal.CreatedTime,
		Transactions: transactions,
	}, "", "  ")
}

// UnmarshalProposal parses the JSON form of a proposal
func UnmarshalProposal(data []byte) (*model.Proposal, error) {
	decoded := &proposalJSON{}
	err := decodeStrict(data, decoded)
	if err != nil {
		return nil, errors.Wrap(err, "malformed proposal")
	}
	transactions, err := transactionsFromJSON(decoded.Transactions)
	if err != nil {
		return nil, err
	}
	return &model.Proposal{
		Height:       decoded.Height,
		CreatedTime:  decoded.CreatedTime,
		Transactions: transactions,
	}, nil
}

// ReadBlockFile reads and parses the block JSON file at path
func ReadBlockFile(path string) (*model.Block, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return UnmarshalBlock(data)
}

// ReadProposalFile reads and parses the proposal JSON file at path
func ReadProposalFile(path string) (*model.Proposal, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return UnmarshalProposal(data)
}

func decodeStrict(data []byte, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func transactionsToJSON(transactions []*model.Transaction) ([]*transactionJSON, error) {
	transactionsJSON := make([]*transactionJSON, len(transactions))
	for i, transaction := range transactions {
		commands := make([]*commandJSON, len(transaction.Commands))
		for j, command := range transaction.Commands {
			var err error
			commands[j], err = commandToJSON(command)
			if err != nil {
				return nil, errors.Wrapf(err, "transaction #%d command #%d", i, j)
			}
		}
		signatures := make([]*signatureJSON, len(transaction.Signatures))
		for j, signature := range transaction.Signatures {
			signatures[j] = &signatureJSON{
				PublicKey: hex.EncodeToString(signature.PublicKey),
				Signature: hex.EncodeToString(signature.Signature),
			}
		}
		transactionsJSON[i] = &transactionJSON{
			CreatorAccountID: transaction.CreatorAccountID,
			CreatedTime:      transaction.CreatedTime,
			Quorum:           transaction.Quorum,
			Commands:         commands,
			Signatures:       signatures,
		}
	}
	return transactionsJSON, nil
}

func transactionsFromJSON(transactionsJSON []*transactionJSON) ([]*model.Transaction, error) {
	transactions := make([]*model.Transaction, len(transactionsJSON))
	for i, transactionJSON := range transactionsJSON {
		if transactionJSON == nil {
			return nil, errors.Errorf("transaction #%d is null", i)
		}
		commands := make([]model.Command, len(transactionJSON.Commands))
		for j, commandJSON := range transactionJSON.Commands {
			if commandJSON == nil {
				return nil, errors.Errorf("transaction #%d command #%d is null", i, j)
			}
			var err error
			commands[j], err = commandJSON.toCommand()
			if err != nil {
				return nil, errors.Wrapf(err, "transaction #%d command #%d", i, j)
			}
		}
		signatures := make([]*model.Signature, len(transactionJSON.Signatures))
		for j, signatureJSON := range transactionJSON.Signatures {
			if signatureJSON == nil {
				return nil, errors.Errorf("transaction #%d signature #%d is null", i, j)
			}
			publicKey, err := hex.DecodeString(signatureJSON.PublicKey)
			if err != nil {
				return nil, errors.Wrapf(err, "transaction #%d signature #%d public key", i, j)
			}
			signature, err := hex.DecodeString(signatureJSON.Signature)
			if err != nil {
				return nil, errors.Wrapf(err, "transaction #%d signature #%d", i, j)
			}
			signatures[j] = &model.Signature{PublicKey: publicKey, Signature: signature}
		}
		transactions[i] = &model.Transaction{
			CreatorAccountID: transactionJSON.CreatorAccountID,
			CreatedTime:      transactionJSON.CreatedTime,
			Quorum:           transactionJSON.Quorum,
			Commands:         commands,
			Signatures:       signatures,
		}
	}
	return transactions, nil
}
