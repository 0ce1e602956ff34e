// Package cryptox seals small secrets, such as wallet private keys, under a
// passphrase. Keys are stretched with argon2id and sealed with
// XChaCha20-Poly1305.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// SaltSize is the length of the random argon2 salt stored next to a sealed
// secret.
const SaltSize = 16

// ErrDecrypt is returned when a sealed secret fails authentication, which in
// practice means a wrong passphrase.
var ErrDecrypt = errors.New("decryption failed")

// DeriveKey stretches a passphrase into a 32-byte key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, chacha20poly1305.KeySize)
}

// Sealed is a secret encrypted under a passphrase-derived key.
type Sealed struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Seal encrypts plaintext under passphrase with a fresh salt and nonce.
// additional is authenticated but not encrypted; it binds the secret to its
// context, for example the public key it belongs to.
func Seal(passphrase, plaintext, additional []byte) (*Sealed, error) {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aead.NonceSize())

	return &Sealed{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, additional),
	}, nil
}

// Open reverses Seal. A wrong passphrase or tampered data yields ErrDecrypt.
func Open(passphrase []byte, s *Sealed, additional []byte) ([]byte, error) {
	key := DeriveKey(passphrase, s.Salt)
	defer common.WipeByteArray(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce length %d", ErrDecrypt, len(s.Nonce))
	}
	plaintext, err := aead.Open(nil, s.Nonce, s.Ciphertext, additional)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
