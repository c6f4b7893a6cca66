package genesisrpc

import (
	"context"

	"github.com/kaspanet/wsvd/domain/wsv/blockjson"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// Client is a client of the genesis block service of a single peer
type Client struct {
	address    string
	connection *grpc.ClientConn
	service    GenesisBlockServiceClient
}

// Connect dials the genesis block service at address. It blocks until
// the connection is up or ctx is done.
func Connect(ctx context.Context, address string, options ...grpc.DialOption) (*Client, error) {
	options = append([]grpc.DialOption{grpc.WithInsecure(), grpc.WithBlock()}, options...)
	connection, err := grpc.DialContext(ctx, address, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to %s", address)
	}
	return &Client{
		address:    address,
		connection: connection,
		service:    NewGenesisBlockServiceClient(connection),
	}, nil
}

// Address returns the address the client is connected to
func (c *Client) Address() string {
	return c.address
}

// SendGenesisBlock sends block to the peer as its genesis block
func (c *Client) SendGenesisBlock(ctx context.Context, block *model.Block) error {
	request, err := newGenesisBlockRequest(block)
	if err != nil {
		return err
	}
	_, err = c.service.SendGenesisBlock(ctx, request)
	if err != nil {
		return errors.Wrapf(err, "error sending the genesis block to %s", c.address)
	}
	return nil
}

// SendAbortGenesisBlock asks the peer to drop block as its genesis block
func (c *Client) SendAbortGenesisBlock(ctx context.Context, block *model.Block) error {
	request, err := newGenesisBlockRequest(block)
	if err != nil {
		return err
	}
	_, err = c.service.SendAbortGenesisBlock(ctx, request)
	if err != nil {
		return errors.Wrapf(err, "error aborting the genesis block on %s", c.address)
	}
	return nil
}

// Close closes the connection to the peer
func (c *Client) Close() error {
	return errors.WithStack(c.connection.Close())
}

func newGenesisBlockRequest(block *model.Block) (*GenesisBlockRequest, error) {
	blockBytes, err := blockjson.MarshalBlock(block)
	if err != nil {
		return nil, err
	}
	return &GenesisBlockRequest{Block: blockBytes}, nil
}
