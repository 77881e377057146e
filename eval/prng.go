//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package eval

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/xerrors"
)

// SeedSize is the size of the randomness seed in bytes.
const SeedSize = chacha20.KeySize

// PRNG is a deterministic random number generator expanding a seed
// with the ChaCha20 keystream.
type PRNG struct {
	cipher *chacha20.Cipher
	buf    [8]byte
}

// NewPRNG creates a new PRNG from the seed.
func NewPRNG(seed []byte) (*PRNG, error) {
	if len(seed) != SeedSize {
		return nil, xerrors.Errorf("invalid seed size %d, expected %d",
			len(seed), SeedSize)
	}
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce)
	if err != nil {
		return nil, err
	}
	return &PRNG{
		cipher: c,
	}, nil
}

// Uint64 returns the next 64 bits of the keystream.
func (prng *PRNG) Uint64() uint64 {
	for i := range prng.buf {
		prng.buf[i] = 0
	}
	prng.cipher.XORKeyStream(prng.buf[:], prng.buf[:])
	return binary.LittleEndian.Uint64(prng.buf[:])
}
