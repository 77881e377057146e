//
// parse.go
//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"regexp"
	"strconv"

	"golang.org/x/xerrors"
)

var (
	reArr   = regexp.MustCompilePOSIX(`^\[([[:digit:]]+)\](.+)$`)
	reSized = regexp.MustCompilePOSIX(`^([[:alpha:]]+)([[:digit:]]*)$`)
)

// Parse parses type definition and returns its type information.
func Parse(val string) (info Info, err error) {
	switch val {
	case "b", "bit", "bool":
		info = Bool
		return

	case "byte":
		info = Uint8
		return
	}

	m := reSized.FindStringSubmatch(val)
	if m != nil {
		switch m[1] {
		case "i", "int":
			info.Type = TInt

		case "u", "uint":
			info.Type = TUint

		default:
			return info, xerrors.Errorf("types.Parse: unknown type: %s", val)
		}
		if len(m[2]) == 0 {
			return info, xerrors.Errorf("types.Parse: unsized type: %s", val)
		}
		var bits int64
		bits, err = strconv.ParseInt(m[2], 10, 32)
		if err != nil {
			return
		}
		switch bits {
		case 8, 16, 32, 64:
		default:
			return info, xerrors.Errorf("types.Parse: invalid bit size: %s", val)
		}
		info.Bits = Size(bits)
		return
	}

	m = reArr.FindStringSubmatch(val)
	if m == nil {
		return info, xerrors.Errorf("types.Parse: unknown type: %s", val)
	}
	var elType Info
	elType, err = Parse(m[2])
	if err != nil {
		return
	}
	ival, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return
	}
	return ArrayOf(elType, int(ival)), nil
}
