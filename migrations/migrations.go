// Package migrations embebe los archivos SQL del esquema en el binario, para
// que las migraciones corran sin importar el directorio de trabajo.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
