package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/migrations"
)

func TestFS_ContieneLasMigracionesSQL(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names, "el esquema viaja embebido en el binario, no en el directorio de trabajo")

	for _, name := range names {
		data, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "-- +goose Up", "%s debe llevar las marcas de goose", name)
		assert.Contains(t, content, "-- +goose Down", "%s debe llevar las marcas de goose", name)
	}
}

func TestFS_EsquemaDelLibroCompleto(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_create_ledger.sql")
	require.NoError(t, err)

	content := strings.ToLower(string(data))
	for _, table := range []string{"items", "entries", "entry_lines", "exits", "exit_lines", "requests", "request_types"} {
		assert.Contains(t, content, "create table "+table, "la migración inicial crea %s", table)
	}
}
