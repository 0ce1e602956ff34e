// Package keys persists sealed wallet keys in the CLI's SQLite database.
//
// Rows carry the base58 public key in clear so keys can be listed without the
// passphrase; the private key is stored only as cryptox ciphertext together
// with its salt and nonce.
package keys
