// Package metadata is the CLI's key/value table. The keystore keeps login
// sessions in it, one row per key name.
package metadata
