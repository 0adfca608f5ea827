// Package migrations embeds the SQL schema migrations of the article store.
package migrations

import "embed"

// FS contains the versioned migration files, named NNN_name.up.sql and
// NNN_name.down.sql.
//
//go:embed *.sql
var FS embed.FS
