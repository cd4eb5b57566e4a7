// Package migrations embebe los ficheros SQL versionados con goose para
// aplicarlos en el arranque del servidor.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
