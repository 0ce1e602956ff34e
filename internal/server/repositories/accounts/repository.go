// Package accounts stores ledger accounts. A repository bound to a database
// transaction is the ledger.Bank the program runs against.
package accounts

import "github.com/dmitrijs2005/linkify/internal/ledger"

// Repository is a ledger.Store. On the writing path Get locks the row it
// reads until the surrounding transaction ends; readers take no locks.
type Repository interface {
	ledger.Store
}
