package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kaspanet/wsvd/app/bootstrap"
	"github.com/kaspanet/wsvd/infrastructure/logger"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}

	err = logger.BackendLog.AddLogWriter(os.Stdout, logger.LevelTrace)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error adding stdout to the logger: %s", err))
	}
	err = logger.BackendLog.Run()
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error starting the logger: %s", err))
	}
	defer logger.BackendLog.Close()

	trustedPeers, err := bootstrap.ParseTrustedPeers(cfg.Peers)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing the trusted peers: %s", err))
	}
	block, err := bootstrap.ParseGenesisBlock(cfg.Genesis)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing the genesis block: %s", err))
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	network := bootstrap.New(bootstrap.NewRPCGenesisBlockClient(timeout))
	if cfg.Abort {
		err = network.AbortNetwork(context.Background(), trustedPeers, block)
	} else {
		err = network.RunNetwork(context.Background(), trustedPeers, block)
	}
	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err.Error())
	}
}

func printErrorAndExit(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
