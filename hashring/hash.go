package hashring

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"
	"golang.org/x/crypto/blake2b"
)

// HashFunc maps a key onto the [0, 2^32) circle.
// Every process sharing a ring layout must agree on the same function.
type HashFunc func(key []byte) uint32

// Names of the built in hash functions
const (
	HashCRC32   = "crc32"
	HashFarm    = "farm"
	HashXXHash  = "xxhash"
	HashBlake2b = "blake2b"
)

// DefaultHash is used for ring points and partition keys when nothing else is configured
const DefaultHash = HashCRC32

// CRC32 is the IEEE crc32 checksum
func CRC32(key []byte) uint32 {
	return crc32.ChecksumIEEE(key)
}

// Farm is the farmhash 32 bit fingerprint
func Farm(key []byte) uint32 {
	return farm.Fingerprint32(key)
}

// XXHash is the low 32 bits of xxhash64
func XXHash(key []byte) uint32 {
	return uint32(xxhash.Sum64(key))
}

// Blake2b is the first 4 bytes of blake2b-256, big endian
func Blake2b(key []byte) uint32 {
	sum := blake2b.Sum256(key)
	return binary.BigEndian.Uint32(sum[:4])
}

var hashFuncs = map[string]HashFunc{
	HashCRC32:   CRC32,
	HashFarm:    Farm,
	HashXXHash:  XXHash,
	HashBlake2b: Blake2b,
}

// HashFuncByName returns the built in hash function registered under name,
// an empty name selects DefaultHash
func HashFuncByName(name string) (HashFunc, error) {
	if name == "" {
		name = DefaultHash
	}
	fn, ok := hashFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return fn, nil
}

// HashNames returns the sorted names of the built in hash functions
func HashNames() []string {
	names := make([]string, 0, len(hashFuncs))
	for name := range hashFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
