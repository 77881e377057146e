//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"reflect"
	"testing"
)

func TestUndefined(t *testing.T) {
	undef := Info{}
	if !undef.Undefined() {
		t.Errorf("undef is not undefined")
	}
}

func TestShape(t *testing.T) {
	m := MatrixOf(Int64, 5, 3)
	if !reflect.DeepEqual(m.Shape(), []int{5, 3}) {
		t.Errorf("Shape: got %v", m.Shape())
	}
	if m.Elements() != 15 {
		t.Errorf("Elements: got %v, expected 15", m.Elements())
	}
	if !m.Scalar().Equal(Int64) {
		t.Errorf("Scalar: got %v", m.Scalar())
	}
	if m.ShortString() != "[5][3]i64" {
		t.Errorf("ShortString: got %v", m.ShortString())
	}
	if m.Bits != 15*64 {
		t.Errorf("Bits: got %v", m.Bits)
	}

	if len(Int32.Shape()) != 0 || Int32.Elements() != 1 {
		t.Errorf("scalar shape: got %v", Int32.Shape())
	}
	if !ShapeOf(Int32, nil).Equal(Int32) {
		t.Errorf("ShapeOf(nil): got %v", ShapeOf(Int32, nil))
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		info Info
		mask uint64
	}{
		{Bool, 1},
		{Int8, 0xff},
		{ArrayOf(Uint32, 2), 0xffffffff},
		{Int64, ^uint64(0)},
	}
	for _, test := range tests {
		if test.info.Mask() != test.mask {
			t.Errorf("%v.Mask: got %x, expected %x",
				test.info, test.info.Mask(), test.mask)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Int32.Equal(Int32) {
		t.Errorf("i32 != i32")
	}
	for _, pair := range [][2]Info{
		{Int32, Uint32},
		{Int32, Int64},
		{ArrayOf(Int32, 2), ArrayOf(Int32, 3)},
		{ArrayOf(Int32, 2), Int32},
	} {
		if pair[0].Equal(pair[1]) {
			t.Errorf("%v == %v", pair[0], pair[1])
		}
	}
}
