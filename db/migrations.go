package db

import "embed"

// Migrations holds the versioned schema files applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
