package main

import (
	"github.com/kaspanet/wsvd/app/ledger"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/infrastructure/network/genesisrpc"
	"github.com/kaspanet/wsvd/infrastructure/os/signal"
)

// genesisHandler applies and aborts the genesis blocks received by the
// genesis block service on a ledger
type genesisHandler struct {
	ledger *ledger.Ledger
}

func (h *genesisHandler) HandleGenesisBlock(block *model.Block) error {
	return h.ledger.ApplyGenesis(block)
}

func (h *genesisHandler) HandleAbortGenesisBlock(block *model.Block) error {
	return h.ledger.AbortGenesis(block)
}

func listen(conf *listenConfig, l *ledger.Ledger) error {
	interrupt := signal.InterruptListener()

	server := genesisrpc.NewServer(&genesisHandler{ledger: l}, conf.MaxMessageSize)
	err := server.Start(conf.Listen)
	if err != nil {
		return err
	}
	defer server.Stop()

	<-interrupt
	return nil
}
