// Package transaction defines the signed envelope that carries a program
// instruction from a client to the ledger service.
//
// The signed message is a fixed domain prefix followed by the little-endian
// encoding of signer, instruction, timestamp and nonce. The wire form is the
// message followed by the 64-byte ed25519 signature.
package transaction

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/binx"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/mr-tron/base58"
)

const SignatureSize = ed25519.SignatureSize

var (
	txDomain    = []byte("linkify-tx-v1")
	loginDomain = []byte("linkify-login:")
)

type Transaction struct {
	Signer      address.Pubkey
	Instruction Instruction
	// Timestamp is unix milliseconds at signing time.
	Timestamp int64
	Nonce     uint64
	Signature [SignatureSize]byte
}

// Message returns the bytes covered by the signature.
func (t *Transaction) Message() []byte {
	data := make([]byte, 0, 128)
	binx.PutFixed(txDomain, &data)
	binx.PutPubkey(t.Signer, &data)
	t.Instruction.put(&data)
	binx.PutInt64(t.Timestamp, &data)
	binx.PutUint64(t.Nonce, &data)
	return data
}

// Sign sets Signer from priv and signs the message.
func (t *Transaction) Sign(priv ed25519.PrivateKey) {
	pub := priv.Public().(ed25519.PublicKey)
	copy(t.Signer[:], pub)
	copy(t.Signature[:], ed25519.Sign(priv, t.Message()))
}

// Verify checks the signature against Signer.
func (t *Transaction) Verify() error {
	if !ed25519.Verify(ed25519.PublicKey(t.Signer[:]), t.Message(), t.Signature[:]) {
		return common.ErrInvalidSignature
	}
	return nil
}

// ID is the base58 signature. It is unique per signed transaction.
func (t *Transaction) ID() string {
	return base58.Encode(t.Signature[:])
}

func (t *Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Encode returns message || signature.
func (t *Transaction) Encode() []byte {
	data := t.Message()
	binx.PutFixed(t.Signature[:], &data)
	return data
}

// Decode parses the output of Encode. It does not verify the signature.
func Decode(data []byte) (*Transaction, error) {
	if !bytes.HasPrefix(data, txDomain) {
		return nil, fmt.Errorf("%w: missing transaction prefix", common.ErrInvalidInput)
	}
	t := &Transaction{}
	position := len(txDomain)
	t.Signer, position = binx.ParsePubkey(data, position)
	t.Instruction, position = parseInstruction(data, position)
	t.Timestamp, position = binx.ParseInt64(data, position)
	t.Nonce, position = binx.ParseUint64(data, position)
	var sig []byte
	sig, position = binx.ParseFixed(data, position, SignatureSize)
	if !binx.Complete(data, position) {
		return nil, fmt.Errorf("%w: malformed transaction", common.ErrInvalidInput)
	}
	copy(t.Signature[:], sig)
	return t, nil
}

// LoginMessage is the challenge a key holder signs to obtain an access token.
func LoginMessage(identity address.Pubkey, timestamp int64) []byte {
	data := make([]byte, 0, len(loginDomain)+address.Size+8)
	binx.PutFixed(loginDomain, &data)
	binx.PutPubkey(identity, &data)
	binx.PutInt64(timestamp, &data)
	return data
}

// VerifyLogin checks sig over LoginMessage(identity, timestamp).
func VerifyLogin(identity address.Pubkey, timestamp int64, sig []byte) error {
	if len(sig) != SignatureSize || !ed25519.Verify(ed25519.PublicKey(identity[:]), LoginMessage(identity, timestamp), sig) {
		return common.ErrInvalidSignature
	}
	return nil
}
