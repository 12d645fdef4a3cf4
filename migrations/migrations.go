// Package migrations holds the SQL schema, one directory per gorm dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
