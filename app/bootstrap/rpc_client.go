package bootstrap

import (
	"context"
	"time"

	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/kaspanet/wsvd/infrastructure/network/genesisrpc"
)

// RPCGenesisBlockClient is a GenesisBlockClient that dials every peer
// over gRPC for each call
type RPCGenesisBlockClient struct {
	dialTimeout time.Duration
}

// NewRPCGenesisBlockClient returns a RPCGenesisBlockClient giving up on
// a peer that cannot be reached within dialTimeout
func NewRPCGenesisBlockClient(dialTimeout time.Duration) *RPCGenesisBlockClient {
	return &RPCGenesisBlockClient{dialTimeout: dialTimeout}
}

// SendGenesisBlock implements GenesisBlockClient
func (c *RPCGenesisBlockClient) SendGenesisBlock(ctx context.Context, address string, block *model.Block) error {
	return c.withClient(ctx, address, func(client *genesisrpc.Client) error {
		return client.SendGenesisBlock(ctx, block)
	})
}

// SendAbortGenesisBlock implements GenesisBlockClient
func (c *RPCGenesisBlockClient) SendAbortGenesisBlock(ctx context.Context, address string, block *model.Block) error {
	return c.withClient(ctx, address, func(client *genesisrpc.Client) error {
		return client.SendAbortGenesisBlock(ctx, block)
	})
}

func (c *RPCGenesisBlockClient) withClient(ctx context.Context, address string,
	call func(client *genesisrpc.Client) error) error {

	dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()
	client, err := genesisrpc.Connect(dialCtx, address)
	if err != nil {
		return err
	}
	defer func() {
		err := client.Close()
		if err != nil {
			log.Warnf("Error closing the connection to %s: %s", address, err)
		}
	}()
	return call(client)
}
