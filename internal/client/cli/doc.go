// Package cli implements the linkify command-line client.
//
// Commands are built with cobra. Keys live in an encrypted SQLite keystore
// under the home directory; ledger commands unlock a key, sign the
// transaction locally and submit it over gRPC. Airdrop and snapshot need a
// server session, created with "linkify login" and refreshed transparently.
package cli
