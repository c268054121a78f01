// Package migrations embebe los archivos SQL de migración del esquema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
