package genesisrpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

// The service described in genesis.proto

const (
	serviceName                 = "wsvd.GenesisBlockService"
	sendGenesisBlockMethod      = "/" + serviceName + "/SendGenesisBlock"
	sendAbortGenesisBlockMethod = "/" + serviceName + "/SendAbortGenesisBlock"
)

// GenesisBlockRequest carries a block in its block JSON form
type GenesisBlockRequest struct {
	Block json.RawMessage `json:"block"`
}

// GenesisBlockResponse is the empty response of the genesis block
// service
type GenesisBlockResponse struct{}

// GenesisBlockServiceClient is the client API of the genesis block
// service
type GenesisBlockServiceClient interface {
	SendGenesisBlock(ctx context.Context, request *GenesisBlockRequest, options ...grpc.CallOption) (
		*GenesisBlockResponse, error)
	SendAbortGenesisBlock(ctx context.Context, request *GenesisBlockRequest, options ...grpc.CallOption) (
		*GenesisBlockResponse, error)
}

type genesisBlockServiceClient struct {
	connection grpc.ClientConnInterface
}

// NewGenesisBlockServiceClient returns a GenesisBlockServiceClient over
// connection. Every call is made in the JSON content-subtype.
func NewGenesisBlockServiceClient(connection grpc.ClientConnInterface) GenesisBlockServiceClient {
	return &genesisBlockServiceClient{connection: connection}
}

func (c *genesisBlockServiceClient) SendGenesisBlock(ctx context.Context, request *GenesisBlockRequest,
	options ...grpc.CallOption) (*GenesisBlockResponse, error) {

	return c.invoke(ctx, sendGenesisBlockMethod, request, options)
}

func (c *genesisBlockServiceClient) SendAbortGenesisBlock(ctx context.Context, request *GenesisBlockRequest,
	options ...grpc.CallOption) (*GenesisBlockResponse, error) {

	return c.invoke(ctx, sendAbortGenesisBlockMethod, request, options)
}

func (c *genesisBlockServiceClient) invoke(ctx context.Context, method string, request *GenesisBlockRequest,
	options []grpc.CallOption) (*GenesisBlockResponse, error) {

	options = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, options...)
	response := &GenesisBlockResponse{}
	err := c.connection.Invoke(ctx, method, request, response, options...)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GenesisBlockServiceServer is the server API of the genesis block
// service
type GenesisBlockServiceServer interface {
	SendGenesisBlock(ctx context.Context, request *GenesisBlockRequest) (*GenesisBlockResponse, error)
	SendAbortGenesisBlock(ctx context.Context, request *GenesisBlockRequest) (*GenesisBlockResponse, error)
}

// RegisterGenesisBlockServiceServer registers server as the genesis
// block service of registrar
func RegisterGenesisBlockServiceServer(registrar grpc.ServiceRegistrar, server GenesisBlockServiceServer) {
	registrar.RegisterService(&genesisBlockServiceDesc, server)
}

var genesisBlockServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*GenesisBlockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendGenesisBlock",
			Handler:    sendGenesisBlockHandler,
		},
		{
			MethodName: "SendAbortGenesisBlock",
			Handler:    sendAbortGenesisBlockHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "genesis.proto",
}

func sendGenesisBlockHandler(srv interface{}, ctx context.Context, dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor) (interface{}, error) {

	request := &GenesisBlockRequest{}
	err := dec(request)
	if err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GenesisBlockServiceServer).SendGenesisBlock(ctx, request)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: sendGenesisBlockMethod}
	handler := func(ctx context.Context, request interface{}) (interface{}, error) {
		return srv.(GenesisBlockServiceServer).SendGenesisBlock(ctx, request.(*GenesisBlockRequest))
	}
	return interceptor(ctx, request, info, handler)
}

func sendAbortGenesisBlockHandler(srv interface{}, ctx context.Context, dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor) (interface{}, error) {

	request := &GenesisBlockRequest{}
	err := dec(request)
	if err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GenesisBlockServiceServer).SendAbortGenesisBlock(ctx, request)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: sendAbortGenesisBlockMethod}
	handler := func(ctx context.Context, request interface{}) (interface{}, error) {
		return srv.(GenesisBlockServiceServer).SendAbortGenesisBlock(ctx, request.(*GenesisBlockRequest))
	}
	return interceptor(ctx, request, info, handler)
}
