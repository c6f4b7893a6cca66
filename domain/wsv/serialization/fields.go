package serialization

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// field is a single decoded protobuf wire field. Only varint and
// length-delimited fields are kept; any other field is skipped.
type field struct {
	number protowire.Number
	varint uint64
	bytes  []byte
}

func readFields(data []byte) ([]field, error) {
	var fields []field
	for len(data) > 0 {
		number, fieldType, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "malformed field tag")
		}
		data = data[n:]

		current := field{number: number}
		known := true
		switch fieldType {
		case protowire.VarintType:
			current.varint, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			current.bytes, n = protowire.ConsumeBytes(data)
		default:
			known = false
			n = protowire.ConsumeFieldValue(number, fieldType, data)
		}
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "malformed field %d", number)
		}
		data = data[n:]
		if known {
			fields = append(fields, current)
		}
	}
	return fields, nil
}

func appendString(b []byte, number protowire.Number, value string) []byte {
	b = protowire.AppendTag(b, number, protowire.BytesType)
	return protowire.AppendString(b, value)
}

func appendBytes(b []byte, number protowire.Number, value []byte) []byte {
	b = protowire.AppendTag(b, number, protowire.BytesType)
	return protowire.AppendBytes(b, value)
}

func appendVarint(b []byte, number protowire.Number, value uint64) []byte {
	b = protowire.AppendTag(b, number, protowire.VarintType)
	return protowire.AppendVarint(b, value)
}

func appendStrings(b []byte, number protowire.Number, values []string) []byte {
	for _, value := range values {
		b = appendString(b, number, value)
	}
	return b
}
