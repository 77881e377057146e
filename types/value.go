//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Value is a typed value. Array elements are stored in row-major
// order and every element is reduced modulo 2^bits of the scalar
// element type.
type Value struct {
	Type Info
	Data []uint64
}

// Zero returns the zero value of the type.
func Zero(t Info) Value {
	return Value{
		Type: t,
		Data: make([]uint64, t.Elements()),
	}
}

// Scalar creates a scalar value of type t.
func Scalar(t Info, v int64) Value {
	return Value{
		Type: t,
		Data: []uint64{uint64(v) & t.Mask()},
	}
}

// Array creates an array value of type t from the row-major element
// values.
func Array(t Info, elements []int64) (Value, error) {
	if len(elements) != t.Elements() {
		return Value{}, xerrors.Errorf("invalid number of elements for %v: "+
			"got %d, expected %d", t, len(elements), t.Elements())
	}
	mask := t.Mask()
	data := make([]uint64, len(elements))
	for idx, el := range elements {
		data[idx] = uint64(el) & mask
	}
	return Value{
		Type: t,
		Data: data,
	}, nil
}

// Shape returns the array dimensions of the value.
func (v Value) Shape() []int {
	return v.Type.Shape()
}

// IsScalar tests if the value is a scalar value.
func (v Value) IsScalar() bool {
	return v.Type.IsScalar()
}

// Int returns the element idx as a sign-extended integer for signed
// types and as an unsigned integer otherwise.
func (v Value) Int(idx int) int64 {
	el := v.Data[idx]
	scalar := v.Type.Scalar()
	if scalar.Type == TInt && scalar.Bits < 64 {
		shift := 64 - uint(scalar.Bits)
		return int64(el<<shift) >> shift
	}
	return int64(el)
}

// Uint returns the element idx as unsigned integer.
func (v Value) Uint(idx int) uint64 {
	return v.Data[idx]
}

// Normalize reduces all elements modulo 2^bits.
func (v Value) Normalize() Value {
	mask := v.Type.Mask()
	for idx := range v.Data {
		v.Data[idx] &= mask
	}
	return v
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	data := make([]uint64, len(v.Data))
	copy(data, v.Data)
	return Value{
		Type: v.Type,
		Data: data,
	}
}

// Equal tests if the argument value is equal to this value.
func (v Value) Equal(o Value) bool {
	if !v.Type.Equal(o.Type) || len(v.Data) != len(o.Data) {
		return false
	}
	for idx, el := range v.Data {
		if el != o.Data[idx] {
			return false
		}
	}
	return true
}

// Check verifies that the value data is consistent with its type.
func (v Value) Check() error {
	if v.Type.Undefined() {
		return xerrors.Errorf("value type undefined")
	}
	if len(v.Data) != v.Type.Elements() {
		return xerrors.Errorf("value %v has %d elements, expected %d",
			v.Type, len(v.Data), v.Type.Elements())
	}
	mask := v.Type.Mask()
	for idx, el := range v.Data {
		if el&^mask != 0 {
			return xerrors.Errorf("element %d out of range for %v", idx, v.Type)
		}
	}
	return nil
}

func (v Value) String() string {
	if v.Type.Undefined() {
		return "<undefined>"
	}
	var sb strings.Builder
	var pos int
	v.format(&sb, v.Shape(), &pos)
	return sb.String()
}

func (v Value) format(sb *strings.Builder, shape []int, pos *int) {
	if len(shape) == 0 {
		sb.WriteString(v.text(*pos))
		*pos++
		return
	}
	sb.WriteRune('[')
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			sb.WriteRune(',')
		}
		v.format(sb, shape[1:], pos)
	}
	sb.WriteRune(']')
}

func (v Value) text(idx int) string {
	if v.Type.Scalar().Type == TInt {
		return strconv.FormatInt(v.Int(idx), 10)
	}
	return strconv.FormatUint(v.Data[idx], 10)
}
