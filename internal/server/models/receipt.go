// Package models defines the server-side records persisted next to the ledger.
package models

import "time"

const (
	ReceiptStatusOK     = "ok"
	ReceiptStatusFailed = "failed"
)

// KindAirdrop marks receipts written by the faucet rather than by a signed
// transaction.
const KindAirdrop = "airdrop"

// Receipt records the outcome of one submitted transaction. Signature is
// unique, so a transaction is applied or rejected at most once.
type Receipt struct {
	ID        string
	Signature string
	Signer    string
	Kind      string
	// Account is the program account created or changed, base58, if any.
	Account string
	Status  string
	Error   string
	// Raw is the encoded transaction as submitted.
	Raw       []byte
	CreatedAt time.Time
}

func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusOK
}
