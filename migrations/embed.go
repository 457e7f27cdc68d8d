// Package migrations embeds the goose migration scripts so they can be
// applied at startup without shipping loose SQL files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
