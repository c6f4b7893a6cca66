package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/kaspanet/wsvd/domain/wsv/blockjson"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
)

// GenesisBlockClient sends genesis blocks to trusted peers
type GenesisBlockClient interface {
	SendGenesisBlock(ctx context.Context, address string, block *model.Block) error
	SendAbortGenesisBlock(ctx context.Context, address string, block *model.Block) error
}

// BootstrapNetwork starts a network of trusted peers from a common
// genesis block
type BootstrapNetwork struct {
	client GenesisBlockClient
}

// New instantiates a new BootstrapNetwork sending blocks through client
func New(client GenesisBlockClient) *BootstrapNetwork {
	return &BootstrapNetwork{client: client}
}

type trustedPeersJSON struct {
	IP []string `json:"ip"`
}

// ParseTrustedPeers reads the addresses of the trusted peers from the
// JSON file at path, of the form {"ip": ["host:port", ...]}
func ParseTrustedPeers(path string) ([]string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	decoded := &trustedPeersJSON{}
	err = decoder.Decode(decoded)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed trusted peers file %s", path)
	}
	if len(decoded.IP) == 0 {
		return nil, errors.Errorf("trusted peers file %s lists no peers", path)
	}
	for i, address := range decoded.IP {
		if address == "" {
			return nil, errors.Errorf("trusted peer #%d in %s has an empty address", i, path)
		}
	}
	return decoded.IP, nil
}

// ParseGenesisBlock reads the genesis block from the block JSON file at
// path
func ParseGenesisBlock(path string) (*model.Block, error) {
	block, err := blockjson.ReadBlockFile(path)
	if err != nil {
		return nil, err
	}
	if block.Height != model.GenesisHeight {
		return nil, errors.Errorf("genesis block in %s has height %d instead of %d",
			path, block.Height, model.GenesisHeight)
	}
	return block, nil
}

// RunNetwork sends block to every trusted peer in order. If any peer
// fails to take it, the genesis block is aborted on all trusted peers
// and the error of the failing peer is returned.
func (b *BootstrapNetwork) RunNetwork(ctx context.Context, trustedPeers []string, block *model.Block) error {
	for _, address := range trustedPeers {
		log.Infof("Sending the genesis block to %s", address)
		err := b.client.SendGenesisBlock(ctx, address, block)
		if err != nil {
			log.Warnf("Peer %s failed to take the genesis block, aborting the network: %s", address, err)
			abortErr := b.AbortNetwork(ctx, trustedPeers, block)
			if abortErr != nil {
				log.Errorf("Error aborting the network: %s", abortErr)
			}
			return errors.Wrapf(err, "peer %s failed to take the genesis block", address)
		}
	}
	log.Infof("Bootstrapped a network of %d trusted peers", len(trustedPeers))
	return nil
}

// AbortNetwork asks every trusted peer to drop block. Every peer is
// asked even if some fail; the first failure is returned.
func (b *BootstrapNetwork) AbortNetwork(ctx context.Context, trustedPeers []string, block *model.Block) error {
	var firstErr error
	for _, address := range trustedPeers {
		log.Infof("Aborting the genesis block on %s", address)
		err := b.client.SendAbortGenesisBlock(ctx, address, block)
		if err != nil {
			log.Warnf("Peer %s failed to abort the genesis block: %s", address, err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "peer %s failed to abort the genesis block", address)
			}
		}
	}
	return firstErr
}
