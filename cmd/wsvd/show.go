package main

import (
	"fmt"

	"github.com/kaspanet/wsvd/app/ledger"
	"github.com/pkg/errors"
)

func show(conf *showConfig, l *ledger.Ledger) error {
	height, found, err := l.Height()
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("The world state view holds no genesis block")
		return nil
	}
	genesisHash, err := l.GenesisHash()
	if err != nil {
		return err
	}
	fmt.Printf("Height %d, genesis block %s\n", height, genesisHash)

	query := l.Query()
	roles, ok := query.Roles()
	if !ok {
		return errors.New("cannot read the roles")
	}
	fmt.Printf("Roles:\n")
	for _, role := range roles {
		permissions, _ := query.RolePermissions(role)
		fmt.Printf("  %s: %v\n", role, permissions)
	}

	peers, ok := query.Peers()
	if !ok {
		return errors.New("cannot read the peers")
	}
	fmt.Printf("Peers:\n")
	for _, peer := range peers {
		fmt.Printf("  %s\n", peer)
	}

	for _, accountID := range conf.Accounts {
		account, ok := query.Account(accountID)
		if !ok {
			fmt.Printf("Account %s does not exist\n", accountID)
			continue
		}
		accountRoles, _ := query.AccountRoles(accountID)
		fmt.Printf("Account %s: quorum %d, roles %v, detail %s\n",
			account.AccountID, account.Quorum, accountRoles, account.Detail)
	}
	return nil
}
