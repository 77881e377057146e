//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"github.com/markkurossi/text/superscript"
)

// NumParties is the number of parties in the ring.
const NumParties = 3

// PartyID identifies a party by its fixed ring position.
type PartyID int

// Valid tests if the party ID is a valid ring position.
func (p PartyID) Valid() bool {
	return p >= 0 && p < NumParties
}

// Next returns the next party in the ring.
func (p PartyID) Next() PartyID {
	return (p + 1) % NumParties
}

// Prev returns the previous party in the ring.
func (p PartyID) Prev() PartyID {
	return (p + NumParties - 1) % NumParties
}

func (p PartyID) String() string {
	return "P" + superscript.Itoa(int(p))
}

// Parties returns all party IDs in ring order.
func Parties() []PartyID {
	result := make([]PartyID, NumParties)
	for i := range result {
		result[i] = PartyID(i)
	}
	return result
}
