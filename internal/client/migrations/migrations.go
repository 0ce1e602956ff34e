// Package migrations embeds the CLI keystore's goose SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
