// Package db carries the SQL migrations, embedded so the migrate binary and
// tests need no files on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
