package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct is a Codec that stores V as a protobuf google.protobuf.Struct.
// V must encode to a JSON object; values pass through their JSON form, so
// non-finite floats are rejected and numbers in `any` fields decode as float64.
// The zero value is ready to use.
type Struct[V any] struct{}

var marshalDet = proto.MarshalOptions{Deterministic: true}

func (Struct[V]) Encode(v V) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("structpb codec: value is not an object: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return marshalDet.Marshal(s)
}

func (Struct[V]) Decode(b []byte) (V, error) {
	var v V
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return v, err
	}
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(raw, &v)
	return v, err
}
