// Package address defines ledger public keys and the deterministic derivation
// of program-owned account addresses.
//
// A program address is derived from a namespace seed, an identity and an
// optional sequence number. It is a sha256 digest that is deliberately not a
// valid ed25519 point, so no private key can ever sign for it and it can never
// collide with a wallet address, which is always an identity.
package address

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Size is the byte length of a public key or derived address.
const Size = 32

// ErrInvalidPubkey is returned when text or bytes do not decode to 32 bytes.
var ErrInvalidPubkey = errors.New("invalid public key")

// Pubkey is an ed25519 public key or a derived account address.
type Pubkey [Size]byte

// Zero is the all-zero key.
var Zero Pubkey

// String renders the key as base58.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, p[:])
	return b
}

func (p Pubkey) IsZero() bool {
	return p == Zero
}

// IsOnCurve reports whether p decodes to a point on the ed25519 curve.
func (p Pubkey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse decodes a base58 key.
func Parse(s string) (Pubkey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	return FromBytes(raw)
}

// MustParse is Parse for compile-time constants. It panics on bad input.
func MustParse(s string) Pubkey {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FromBytes copies b into a Pubkey. b must be exactly Size bytes long.
func FromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != Size {
		return p, fmt.Errorf("%w: got %d bytes", ErrInvalidPubkey, len(b))
	}
	copy(p[:], b)
	return p, nil
}
