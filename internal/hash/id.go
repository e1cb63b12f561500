// Package hash wraps xxHash64 for column identifiers, payload checksums and
// Gram matrix cache keys.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of a column or kernel name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Sum computes the xxHash64 of a byte payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Key hashes a name followed by any number of float64 sequences.
//
// Each sequence is prefixed with its length so that ([1,2],[3]) and ([1],[2,3])
// produce different keys. Values are hashed by their IEEE-754 bits, so -0 and
// +0 hash differently.
func Key(name string, seqs ...[]float64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)

	var buf [8]byte
	for _, seq := range seqs {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(seq)))
		_, _ = d.Write(buf[:])
		for _, v := range seq {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
