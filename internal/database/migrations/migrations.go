package migrations

import "embed"

//go:embed schema.sql
var Files embed.FS
