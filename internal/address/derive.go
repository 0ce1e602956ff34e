package address

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const (
	// MaxSeeds bounds the number of seeds passed to a derivation.
	MaxSeeds = 16
	// MaxSeedLen bounds the length of a single seed.
	MaxSeedLen = 32

	UserNamespace       = "user"
	ConnectionNamespace = "connect"
)

var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress hashes the length-prefixed seeds, the bump byte, the
// program id and a fixed marker. ok is false when the digest happens to be a
// valid curve point; such a digest must not be used as an address.
//
// Oversized seeds are programming errors and panic.
func CreateProgramAddress(seeds [][]byte, bump uint8, programID Pubkey) (addr Pubkey, ok bool) {
	if len(seeds) > MaxSeeds {
		panic(fmt.Sprintf("address: %d seeds, max %d", len(seeds), MaxSeeds))
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			panic(fmt.Sprintf("address: seed of %d bytes, max %d", len(seed), MaxSeedLen))
		}
		h.Write([]byte{byte(len(seed))})
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(programID[:])
	h.Write(pdaMarker)
	copy(addr[:], h.Sum(nil))
	return addr, !addr.IsOnCurve()
}

// FindProgramAddress walks bumps from 255 down and returns the first
// off-curve address together with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8) {
	for bump := 255; bump >= 0; bump-- {
		if addr, ok := CreateProgramAddress(seeds, uint8(bump), programID); ok {
			return addr, uint8(bump)
		}
	}
	// Each bump fails with probability about 1/2; 256 failures in a row do not happen.
	panic("address: no off-curve bump found")
}

// UserAddress derives the profile account of owner.
func UserAddress(programID, owner Pubkey) (Pubkey, uint8) {
	return FindProgramAddress([][]byte{[]byte(UserNamespace), owner[:]}, programID)
}

// ConnectionAddress derives the seq-th connection account targeting acceptor.
// seq is encoded as 4 little-endian bytes.
func ConnectionAddress(programID, acceptor Pubkey, seq uint32) (Pubkey, uint8) {
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], seq)
	return FindProgramAddress([][]byte{[]byte(ConnectionNamespace), acceptor[:], le[:]}, programID)
}
