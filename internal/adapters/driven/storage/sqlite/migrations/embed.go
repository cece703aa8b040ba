// Package migrations holds the SQLite workspace schema as numbered
// NNN_name.up.sql / NNN_name.down.sql pairs.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
