package genesisrpc

import (
	"context"
	"net"
	"time"

	"github.com/kaspanet/wsvd/domain/wsv/blockjson"
	"github.com/kaspanet/wsvd/domain/wsv/model"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GenesisBlockHandler handles the genesis blocks a server receives
type GenesisBlockHandler interface {
	HandleGenesisBlock(block *model.Block) error
	HandleAbortGenesisBlock(block *model.Block) error
}

var _ GenesisBlockServiceServer = (*Server)(nil)

// Server serves the genesis block service
type Server struct {
	handler GenesisBlockHandler
	server  *grpc.Server
}

// NewServer creates a Server passing every received block to handler
func NewServer(handler GenesisBlockHandler, maxMessageSize int) *Server {
	s := &Server{
		handler: handler,
		server:  grpc.NewServer(grpc.MaxRecvMsgSize(maxMessageSize), grpc.MaxSendMsgSize(maxMessageSize)),
	}
	RegisterGenesisBlockServiceServer(s.server, s)
	log.Debugf("Created new genesis block server with maxMessageSize %d", maxMessageSize)
	return s
}

// Start listens on listenAddress and serves in the background
func (s *Server) Start(listenAddress string) error {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return errors.Wrapf(err, "error listening on %s", listenAddress)
	}
	s.Serve(listener)
	log.Infof("Genesis block server listening on %s", listenAddress)
	return nil
}

// Serve serves on listener in the background
func (s *Server) Serve(listener net.Listener) {
	go func() {
		err := s.server.Serve(listener)
		if err != nil {
			log.Errorf("Error serving on %s: %+v", listener.Addr(), err)
		}
	}()
}

// Stop stops the server, waiting a short while for running calls
func (s *Server) Stop() {
	const stopTimeout = 2 * time.Second

	stopChan := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopChan)
	}()

	select {
	case <-stopChan:
	case <-time.After(stopTimeout):
		log.Warnf("Could not gracefully stop the genesis block server: timed out after %s", stopTimeout)
		s.server.Stop()
	}
}

// SendGenesisBlock implements the SendGenesisBlock call
func (s *Server) SendGenesisBlock(_ context.Context, request *GenesisBlockRequest) (*GenesisBlockResponse, error) {
	block, err := blockjson.UnmarshalBlock(request.Block)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	log.Infof("Received a genesis block with %d transactions", len(block.Transactions))
	err = s.handler.HandleGenesisBlock(block)
	if err != nil {
		log.Warnf("Genesis block rejected: %s", err)
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &GenesisBlockResponse{}, nil
}

// SendAbortGenesisBlock implements the SendAbortGenesisBlock call
func (s *Server) SendAbortGenesisBlock(_ context.Context, request *GenesisBlockRequest) (*GenesisBlockResponse, error) {
	block, err := blockjson.UnmarshalBlock(request.Block)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	log.Infof("Received an abort of a genesis block with %d transactions", len(block.Transactions))
	err = s.handler.HandleAbortGenesisBlock(block)
	if err != nil {
		log.Warnf("Genesis block abort rejected: %s", err)
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &GenesisBlockResponse{}, nil
}
