// Package migrations embeds the SQL migration files so binaries and tests
// apply the same schema without a working directory dependency.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
