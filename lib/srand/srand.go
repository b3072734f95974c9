// Package srand provides math/rand sources seeded from the system CSPRNG.
//
// The stock math/rand source is deterministic unless seeded explicitly, and
// seeding from the clock is guessable. Use rand.New(srand.Source) anywhere a
// *rand.Rand is needed for secrets or unpredictable identifiers.
package srand

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is a math/rand source seeded from crypto/rand.
//
// It is re-seeded at program startup only. It is not safe for concurrent use
// without external locking, same as any other rand.Source.
var Source = New()

// New returns a fresh rand.Source64 seeded from crypto/rand.
func New() rand.Source64 {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("cannot read random seed - %s", err))
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))).(rand.Source64)
}
