//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"

	"golang.org/x/xerrors"
)

// Value kinds in the JSON encoding.
const (
	KindScalar = "scalar"
	KindArray  = "array"
)

type jsonValue struct {
	Kind  string          `json:"kind"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Shape []int           `json:"shape,omitempty"`
}

// MarshalJSON encodes the value as a self-describing JSON object:
//
//	{"kind":"scalar","type":"i32","value":60}
//	{"kind":"array","type":"i64","value":[[1,2],[3,4]]}
//
// Arrays with a zero-length dimension followed by further dimensions
// carry their full dimensions in the shape field since the nested
// value lists can't express them:
//
//	{"kind":"array","type":"i32","value":[],"shape":[0,5]}
func (v Value) MarshalJSON() ([]byte, error) {
	if err := v.Check(); err != nil {
		return nil, err
	}
	jv := &jsonValue{
		Kind:  KindScalar,
		Type:  v.Type.Scalar().ShortString(),
		Value: json.RawMessage(v.String()),
	}
	if v.Type.Type == TArray {
		jv.Kind = KindArray
		shape := v.Shape()
		if hiddenDims(shape) {
			jv.Shape = shape
		}
	}
	return json.Marshal(jv)
}

// hiddenDims tests if a zero-length dimension precedes other
// dimensions in the shape.
func hiddenDims(shape []int) bool {
	for idx, dim := range shape {
		if dim == 0 {
			return idx < len(shape)-1
		}
	}
	return false
}

// UnmarshalJSON decodes the value from its JSON object encoding.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	scalar, err := Parse(jv.Type)
	if err != nil {
		return err
	}
	if !scalar.IsScalar() {
		return xerrors.Errorf("invalid element type %v", jv.Type)
	}

	dec := json.NewDecoder(bytes.NewReader(jv.Value))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return xerrors.Errorf("invalid %s value: %w", jv.Kind, err)
	}

	var shape []int
	var numbers []json.Number
	if err := flatten(tree, 0, &shape, &numbers); err != nil {
		return err
	}

	switch jv.Kind {
	case KindScalar:
		if len(shape) != 0 {
			return xerrors.Errorf("scalar value has shape %v", shape)
		}
	case KindArray:
		if len(shape) == 0 {
			return xerrors.Errorf("array value has no dimensions")
		}
	default:
		return xerrors.Errorf("unsupported value kind '%s'", jv.Kind)
	}

	if jv.Shape != nil {
		if jv.Kind != KindArray {
			return xerrors.Errorf("%s value with shape %v", jv.Kind, jv.Shape)
		}
		if !hiddenDims(jv.Shape) || len(numbers) != 0 ||
			!equalPrefix(shape, jv.Shape) {
			return xerrors.Errorf("value %s does not match shape %v",
				jv.Value, jv.Shape)
		}
		for _, dim := range jv.Shape {
			if dim < 0 {
				return xerrors.Errorf("invalid shape %v", jv.Shape)
			}
		}
		shape = jv.Shape
	}

	t := ShapeOf(scalar, shape)
	result := Zero(t)
	for idx, num := range numbers {
		el, err := parseElement(scalar, num)
		if err != nil {
			return err
		}
		result.Data[idx] = el
	}
	*v = result
	return nil
}

// equalPrefix tests if the nested value dimensions are a prefix of the
// declared shape.
func equalPrefix(nested, shape []int) bool {
	if len(nested) > len(shape) {
		return false
	}
	for idx, dim := range nested {
		if shape[idx] != dim {
			return false
		}
	}
	return true
}

func flatten(tree interface{}, depth int, shape *[]int,
	numbers *[]json.Number) error {

	switch t := tree.(type) {
	case json.Number:
		if depth != len(*shape) {
			return xerrors.Errorf("ragged array value")
		}
		*numbers = append(*numbers, t)
		return nil

	case []interface{}:
		if depth == len(*shape) {
			if len(*numbers) > 0 {
				return xerrors.Errorf("ragged array value")
			}
			*shape = append(*shape, len(t))
		} else if depth > len(*shape) || (*shape)[depth] != len(t) {
			return xerrors.Errorf("ragged array value")
		}
		for _, el := range t {
			if err := flatten(el, depth+1, shape, numbers); err != nil {
				return err
			}
		}
		return nil

	default:
		return xerrors.Errorf("invalid value element %v (%T)", tree, tree)
	}
}

func parseElement(t Info, num json.Number) (uint64, error) {
	i, ok := new(big.Int).SetString(num.String(), 10)
	if !ok {
		return 0, xerrors.Errorf("invalid %v value: %s", t, num)
	}
	var min, max *big.Int
	bits := uint(t.Bits)
	if t.Type == TInt {
		min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
		max = new(big.Int).Lsh(big.NewInt(1), bits-1)
	} else {
		min = big.NewInt(0)
		max = new(big.Int).Lsh(big.NewInt(1), bits)
	}
	if i.Cmp(min) < 0 || i.Cmp(max) >= 0 {
		return 0, xerrors.Errorf("value %s out of range for %v", num, t)
	}
	if i.Sign() < 0 {
		return uint64(i.Int64()) & t.Mask(), nil
	}
	return i.Uint64(), nil
}

// LoadValues reads a JSON list of values from the file.
func LoadValues(file string) ([]Value, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return UnmarshalValues(data)
}

// UnmarshalValues decodes a JSON list of values.
func UnmarshalValues(data []byte) ([]Value, error) {
	var values []Value
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
