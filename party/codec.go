//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package party

import (
	"encoding/json"

	"github.com/markkurossi/ringeval/types"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

// Codec encodes values for transmission over ring channels. The
// encoding is self-describing: Decode restores the value type from
// the encoded data.
type Codec interface {
	Encode(v types.Value) ([]byte, error)
	Decode(data []byte) (types.Value, error)
}

var (
	_ Codec = JSONCodec{}
	_ Codec = ProtoCodec{}
)

// NewCodec returns the codec by name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "proto", "protobuf":
		return ProtoCodec{}, nil
	default:
		return nil, xerrors.Errorf("unknown codec '%s'", name)
	}
}

// JSONCodec encodes values in the typed value JSON format.
type JSONCodec struct{}

// Encode implements Codec.Encode.
func (c JSONCodec) Encode(v types.Value) ([]byte, error) {
	return json.Marshal(v)
}

// Decode implements Codec.Decode.
func (c JSONCodec) Decode(data []byte) (types.Value, error) {
	var v types.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return types.Value{}, xerrors.Errorf("json codec: %w", err)
	}
	return v, nil
}

// ProtoCodec encodes values as protobuf messages holding the type
// name and the raw element data.
type ProtoCodec struct{}

// ProtoValue is the protobuf message of the ProtoCodec.
type ProtoValue struct {
	Type string
	Data []uint64
}

// Encode implements Codec.Encode.
func (c ProtoCodec) Encode(v types.Value) ([]byte, error) {
	return protobuf.Encode(&ProtoValue{
		Type: v.Type.ShortString(),
		Data: v.Data,
	})
}

// Decode implements Codec.Decode.
func (c ProtoCodec) Decode(data []byte) (types.Value, error) {
	msg := new(ProtoValue)
	if err := protobuf.Decode(data, msg); err != nil {
		return types.Value{}, xerrors.Errorf("proto codec: %w", err)
	}
	t, err := types.Parse(msg.Type)
	if err != nil {
		return types.Value{}, xerrors.Errorf("proto codec: %w", err)
	}
	v := types.Value{
		Type: t,
		Data: msg.Data,
	}
	if err := v.Check(); err != nil {
		return types.Value{}, xerrors.Errorf("proto codec: %w", err)
	}
	return v, nil
}
