package blockjson

import (
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/wsvd/domain/wsv/model"
)

func TestReadBlockFile(t *testing.T) {
	block, err := ReadBlockFile("testdata/genesis.json")
	if err != nil {
		t.Fatalf("TestReadBlockFile: ReadBlockFile unexpectedly failed: %s", err)
	}
	if block.Height != model.GenesisHeight || len(block.PrevHash) != 0 {
		t.Fatalf("TestReadBlockFile: unexpected block header %s", spew.Sdump(block))
	}
	if len(block.Transactions) != 1 {
		t.Fatalf("TestReadBlockFile: expected 1 transaction, got %d", len(block.Transactions))
	}
	commands := block.Transactions[0].Commands
	if len(commands) != 7 {
		t.Fatalf("TestReadBlockFile: expected 7 commands, got %d", len(commands))
	}
	addPeer, ok := commands[0].(*model.AddPeer)
	if !ok || addPeer.Peer.Address != "127.0.0.1:10001" || len(addPeer.Peer.PublicKey) != 32 {
		t.Fatalf("TestReadBlockFile: unexpected first command %s", spew.Sdump(commands[0]))
	}
	user, ok := commands[2].(*model.CreateRole)
	if !ok || user.RoleName != "user" || user.Permissions == nil || len(user.Permissions) != 0 {
		t.Fatalf("TestReadBlockFile: unexpected third command %s", spew.Sdump(commands[2]))
	}
	asset, ok := commands[4].(*model.CreateAsset)
	if !ok || asset.Precision != 2 {
		t.Fatalf("TestReadBlockFile: unexpected fifth command %s", spew.Sdump(commands[4]))
	}
}

func TestProposalRoundTrip(t *testing.T) {
	proposal := &model.Proposal{
		Height:      3,
		CreatedTime: 42,
		Transactions: []*model.Transaction{
			{
				CreatorAccountID: "admin@test",
				CreatedTime:      41,
				Quorum:           2,
				Commands: []model.Command{
					&model.AppendRolePermissions{RoleName: "user", Permissions: []string{model.CanSetDetail}},
					&model.DetachRole{AccountID: "alice@test", RoleName: "user"},
					&model.SetAccountDetail{AccountID: "alice@test", Key: "key", Value: "value"},
					&model.GrantPermission{AccountID: "bob@test", Permission: model.CanSetMyQuorum},
					&model.RevokePermission{AccountID: "bob@test", Permission: model.CanSetMyQuorum},
					&model.SetQuorum{AccountID: "admin@test", Quorum: 2},
					&model.RemovePeer{PublicKey: []byte{0xab, 0xcd}},
				},
				Signatures: []*model.Signature{
					{PublicKey: []byte{1}, Signature: []byte{2}},
					{PublicKey: []byte{3}, Signature: []byte{4}},
				},
			},
		},
	}
	data, err := MarshalProposal(proposal)
	if err != nil {
		t.Fatalf("TestProposalRoundTrip: MarshalProposal unexpectedly failed: %s", err)
	}
	if !strings.Contains(string(data), `"type": "SetQuorum"`) {
		t.Fatalf("TestProposalRoundTrip: commands are not tagged by type: %s", data)
	}
	decoded, err := UnmarshalProposal(data)
	if err != nil {
		t.Fatalf("TestProposalRoundTrip: UnmarshalProposal unexpectedly failed: %s", err)
	}
	if !reflect.DeepEqual(decoded, proposal) {
		t.Fatalf("TestProposalRoundTrip: expected %s, got %s", spew.Sdump(proposal), spew.Sdump(decoded))
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown field", `{"height": 2, "color": "red", "transactions": []}`},
		{"unknown command", `{"height": 2, "transactions": [{"commands": [{"type": "Transfer"}]}]}`},
		{"peer missing", `{"height": 2, "transactions": [{"commands": [{"type": "AddPeer"}]}]}`},
		{"bad public key", `{"height": 2, "transactions": [{"commands": [{"type": "RemovePeer", "publicKey": "zz"}]}]}`},
		{"bad signature", `{"height": 2, "transactions": [{"signatures": [{"publicKey": "01", "signature": "x"}]}]}`},
		{"null command", `{"height": 2, "transactions": [{"commands": [null]}]}`},
	}
	for _, test := range tests {
		_, err := UnmarshalProposal([]byte(test.data))
		if err == nil {
			t.Errorf("TestUnmarshalMalformed: %s: UnmarshalProposal unexpectedly succeeded", test.name)
		}
	}
}

func TestMarshalNilPeer(t *testing.T) {
	block := &model.Block{
		Height:       model.GenesisHeight,
		Transactions: []*model.Transaction{{Commands: []model.Command{&model.AddPeer{}}}},
	}
	_, err := MarshalBlock(block)
	if err == nil {
		t.Fatalf("TestMarshalNilPeer: MarshalBlock unexpectedly succeeded")
	}
}
