package models

import "time"

// Snapshot describes an exported ledger image in object storage.
type Snapshot struct {
	Key           string
	Checksum      string
	Accounts      int
	TotalLamports uint64
	URL           string
	URLExpires    time.Time
	CreatedAt     time.Time
}
