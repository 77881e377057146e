//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"testing"
)

var parseTests = []struct {
	input string
	info  Info
}{
	{
		input: "b",
		info:  Bool,
	},
	{
		input: "bit",
		info:  Bool,
	},
	{
		input: "byte",
		info:  Uint8,
	},
	{
		input: "i32",
		info:  Int32,
	},
	{
		input: "int32",
		info:  Int32,
	},
	{
		input: "u64",
		info:  Uint64,
	},
	{
		input: "[4]i16",
		info:  ArrayOf(Int16, 4),
	},
	{
		input: "[2][3]i64",
		info:  MatrixOf(Int64, 2, 3),
	},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		info, err := Parse(test.input)
		if err != nil {
			t.Errorf("failed to parse type '%s': %s", test.input, err)
			continue
		}
		if !info.Equal(test.info) {
			t.Errorf("%s: got %v, expected %v", test.input, info, test.info)
		}
	}
}

func TestParseShortStringRoundTrip(t *testing.T) {
	for _, test := range parseTests {
		short := test.info.ShortString()
		info, err := Parse(short)
		if err != nil {
			t.Errorf("failed to parse type '%s': %s", short, err)
			continue
		}
		if !info.Equal(test.info) {
			t.Errorf("%s: got %v, expected %v", short, info, test.info)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "i", "i7", "float32", "[x]i32", "[]i32"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}
