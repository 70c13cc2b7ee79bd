// Package migrations embeds the goose migrations that create the blob table
// for each SQL backend.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
