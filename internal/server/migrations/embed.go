// Package migrations embeds the goose SQL migration files shipped inside
// the server binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
