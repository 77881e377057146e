//
// types.go
//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

// Package types implements the typed values that flow through
// computation graphs.
package types

import (
	"fmt"
)

// Type specifies a value type class.
type Type int8

// Size specify bit counts and array sizes.
type Size int32

func (t Type) String() string {
	for k, v := range Types {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("{Type %d}", t)
}

// ShortString returns a short string name for the type.
func (t Type) ShortString() string {
	name, ok := shortTypes[t]
	if ok {
		return name
	}
	return t.String()
}

// Value types.
const (
	TUndefined Type = iota
	TBool
	TInt
	TUint
	TArray
)

// Types define type class names.
var Types = map[string]Type{
	"<Undefined>": TUndefined,
	"bool":        TBool,
	"int":         TInt,
	"uint":        TUint,
	"array":       TArray,
}

var shortTypes = map[Type]string{
	TUndefined: "?",
	TBool:      "b",
	TInt:       "i",
	TUint:      "u",
	TArray:     "arr",
}

// Info specifies information about a type.
type Info struct {
	Type        Type
	Bits        Size
	ElementType *Info
	ArraySize   Size
}

// Undefined defines type info for undefined types.
var Undefined = Info{
	Type: TUndefined,
}

// Bool defines type info for single bit values.
var Bool = Info{
	Type: TBool,
	Bits: 1,
}

// Int8 defines type info for signed 8bit integers.
var Int8 = Info{
	Type: TInt,
	Bits: 8,
}

// Uint8 defines type info for unsigned 8bit integers.
var Uint8 = Info{
	Type: TUint,
	Bits: 8,
}

// Int16 defines type info for signed 16bit integers.
var Int16 = Info{
	Type: TInt,
	Bits: 16,
}

// Uint16 defines type info for unsigned 16bit integers.
var Uint16 = Info{
	Type: TUint,
	Bits: 16,
}

// Int32 defines type info for signed 32bit integers.
var Int32 = Info{
	Type: TInt,
	Bits: 32,
}

// Uint32 defines type info for unsigned 32bit integers.
var Uint32 = Info{
	Type: TUint,
	Bits: 32,
}

// Int64 defines type info for signed 64bit integers.
var Int64 = Info{
	Type: TInt,
	Bits: 64,
}

// Uint64 defines type info for unsigned 64bit integers.
var Uint64 = Info{
	Type: TUint,
	Bits: 64,
}

// ArrayOf returns the type info for an array of size elements of the
// element type el.
func ArrayOf(el Info, size int) Info {
	return Info{
		Type:        TArray,
		Bits:        Size(size) * el.Bits,
		ElementType: &el,
		ArraySize:   Size(size),
	}
}

// MatrixOf returns the type info for a rows x cols matrix of el.
func MatrixOf(el Info, rows, cols int) Info {
	return ArrayOf(ArrayOf(el, cols), rows)
}

// ShapeOf returns an array type with the given dimensions. An empty
// shape returns the element type itself.
func ShapeOf(el Info, shape []int) Info {
	result := el
	for i := len(shape) - 1; i >= 0; i-- {
		result = ArrayOf(result, shape[i])
	}
	return result
}

func (i Info) String() string {
	switch i.Type {
	case TArray:
		return fmt.Sprintf("[%d]%s", i.ArraySize, i.ElementType)

	default:
		if i.Bits == 0 {
			return i.Type.String()
		}
		return fmt.Sprintf("%s%d", i.Type, i.Bits)
	}
}

// ShortString returns a short string name for the type info. The
// result can be parsed back with Parse.
func (i Info) ShortString() string {
	switch i.Type {
	case TArray:
		return fmt.Sprintf("[%d]%s", i.ArraySize, i.ElementType.ShortString())
	case TBool:
		return "b"
	}
	if i.Bits == 0 {
		return i.Type.ShortString()
	}
	return fmt.Sprintf("%s%d", i.Type.ShortString(), i.Bits)
}

// Undefined tests if type is undefined.
func (i Info) Undefined() bool {
	return i.Type == TUndefined
}

// IsScalar tests if the type is a scalar type.
func (i Info) IsScalar() bool {
	switch i.Type {
	case TBool, TInt, TUint:
		return true
	default:
		return false
	}
}

// Scalar returns the innermost element type of the type.
func (i Info) Scalar() Info {
	for i.Type == TArray {
		i = *i.ElementType
	}
	return i
}

// Shape returns the array dimensions of the type. Scalars have an
// empty shape.
func (i Info) Shape() []int {
	var shape []int
	for i.Type == TArray {
		shape = append(shape, int(i.ArraySize))
		i = *i.ElementType
	}
	return shape
}

// Elements returns the number of scalar elements in the type.
func (i Info) Elements() int {
	count := 1
	for _, dim := range i.Shape() {
		count *= dim
	}
	return count
}

// Mask returns the bit mask of the scalar element type.
func (i Info) Mask() uint64 {
	bits := i.Scalar().Bits
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// Equal tests if the argument type is equal to this type info.
func (i Info) Equal(o Info) bool {
	if i.Type != o.Type {
		return false
	}
	switch i.Type {
	case TUndefined, TBool, TInt, TUint:
		return i.Bits == o.Bits

	case TArray:
		if i.ArraySize != o.ArraySize || i.Bits != o.Bits {
			return false
		}
		return i.ElementType.Equal(*o.ElementType)

	default:
		panic(fmt.Sprintf("Info.Equal called for %v (%T)", i.Type, i.Type))
	}
}
