package main

import (
	"fmt"

	"github.com/kaspanet/wsvd/app/bootstrap"
	"github.com/kaspanet/wsvd/app/ledger"
)

func initialize(conf *initConfig, l *ledger.Ledger) error {
	block, err := bootstrap.ParseGenesisBlock(conf.Genesis)
	if err != nil {
		return err
	}
	err = l.ApplyGenesis(block)
	if err != nil {
		return err
	}
	genesisHash, err := l.GenesisHash()
	if err != nil {
		return err
	}
	fmt.Printf("Initialized the world state view with genesis block %s\n", genesisHash)
	return nil
}
