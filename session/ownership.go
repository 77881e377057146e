//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

// Ownership specifies who holds the plaintext of an input slot.
// Non-negative values are party IDs.
type Ownership int

// Ownerships not bound to a single party.
const (
	Public       Ownership = -1
	SecretShared Ownership = -2
)

// Owner returns the ownership of the party id.
func Owner(id ring.PartyID) Ownership {
	return Ownership(id)
}

func (o Ownership) String() string {
	switch o {
	case Public:
		return "public"
	case SecretShared:
		return "secret-shared"
	default:
		return strconv.Itoa(int(o))
	}
}

// Visible tests if the party id may hold the plaintext of the slot.
func (o Ownership) Visible(id ring.PartyID) bool {
	switch o {
	case Public, SecretShared:
		return true
	default:
		return ring.PartyID(o) == id
	}
}

// ParseOwnership parses the ownership tag.
func ParseOwnership(tag string) (Ownership, error) {
	switch tag {
	case "public":
		return Public, nil
	case "secret-shared":
		return SecretShared, nil
	}
	id, err := strconv.Atoi(tag)
	if err != nil || !ring.PartyID(id).Valid() {
		return 0, xerrors.Errorf("invalid ownership tag '%s'", tag)
	}
	return Owner(ring.PartyID(id)), nil
}

// ParseOwnerships parses the comma-separated list of ownership tags.
func ParseOwnerships(tags string) ([]Ownership, error) {
	if len(tags) == 0 {
		return nil, xerrors.New("empty ownership tags")
	}
	var result []Ownership
	for _, tag := range strings.Split(tags, ",") {
		o, err := ParseOwnership(strings.TrimSpace(tag))
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

// Redact returns the inputs as seen by the party id. Slots the party
// may not see are replaced with the zero value of their type. The
// function panics if the number of inputs and tags differ.
func Redact(inputs []types.Value, tags []Ownership,
	id ring.PartyID) []types.Value {

	if len(inputs) != len(tags) {
		panic(fmt.Sprintf("redact: %d inputs, %d ownership tags",
			len(inputs), len(tags)))
	}
	result := make([]types.Value, len(inputs))
	for idx, input := range inputs {
		if tags[idx].Visible(id) {
			result[idx] = input.Clone()
		} else {
			result[idx] = types.Zero(input.Type)
		}
	}
	return result
}

// RedactAll returns the redacted inputs of all parties.
func RedactAll(inputs []types.Value, tags []Ownership) (
	result [ring.NumParties][]types.Value) {

	for _, id := range ring.Parties() {
		result[id] = Redact(inputs, tags, id)
	}
	return
}
