// Package services contains the server-side business logic behind the gRPC
// and HTTP transports. Every service runs its repository work inside
// repomanager units of work.
package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/linkify/internal/common"
)

// maxClockSkew is how far in the future a signed timestamp may be.
const maxClockSkew = 30 * time.Second

// checkWindow rejects signing times older than maxAge or ahead of now by more
// than maxClockSkew.
func checkWindow(signed, now time.Time, maxAge time.Duration) error {
	if signed.Before(now.Add(-maxAge)) {
		return fmt.Errorf("%w: signed %s ago", common.ErrTransactionExpired, now.Sub(signed).Round(time.Second))
	}
	if signed.After(now.Add(maxClockSkew)) {
		return fmt.Errorf("%w: signed %s ahead", common.ErrTransactionExpired, signed.Sub(now).Round(time.Second))
	}
	return nil
}

// Services bundles what the transports serve.
type Services struct {
	Transactions *TransactionService
	Queries      *QueryService
	Auth         *AuthService
	Faucet       *FaucetService
	Snapshots    *SnapshotService
}
