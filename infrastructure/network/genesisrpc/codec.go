package genesisrpc

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype the genesis block service is
// spoken in
const codecName = "json"

// jsonCodec encodes gRPC messages as JSON
type jsonCodec struct{}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	return data, errors.WithStack(err)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return errors.WithStack(json.Unmarshal(data, v))
}

func (jsonCodec) Name() string {
	return codecName
}
