package paging_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/paging"
)

// fakeStore simula un almacén de n filas enteras consecutivas y registra cada
// petición de página para verificar el orden estricto.
type fakeStore struct {
	n     int
	calls [][2]int // (limit, offset) por llamada
}

func (s *fakeStore) fetch(limit, offset int) ([]int, error) {
	s.calls = append(s.calls, [2]int{limit, offset})
	if offset >= s.n {
		return nil, nil
	}
	end := offset + limit
	if end > s.n {
		end = s.n
	}
	page := make([]int, 0, end-offset)
	for i := offset; i < end; i++ {
		page = append(page, i)
	}
	return page, nil
}

func TestReadAll_VariasPaginasCompletas(t *testing.T) {
	store := &fakeStore{n: 2500}

	all, err := paging.ReadAll(1000, store.fetch)

	require.NoError(t, err)
	require.Len(t, all, 2500, "el resultado completo cruza los límites de página sin perder filas")
	assert.Equal(t, [][2]int{{1000, 0}, {1000, 1000}, {1000, 2000}}, store.calls,
		"las páginas se piden en orden estricto y la página corta termina la lectura")
	assert.Equal(t, 0, all[0])
	assert.Equal(t, 2499, all[2499], "el orden de las filas se preserva")
}

func TestReadAll_ExactoMultiploDePagina(t *testing.T) {
	store := &fakeStore{n: 2000}

	all, err := paging.ReadAll(1000, store.fetch)

	require.NoError(t, err)
	assert.Len(t, all, 2000)
	assert.Len(t, store.calls, 3, "tras dos páginas llenas hace falta la vacía para terminar")
}

func TestReadAll_ResultadoVacio(t *testing.T) {
	store := &fakeStore{n: 0}

	all, err := paging.ReadAll(1000, store.fetch)

	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Len(t, store.calls, 1)
}

func TestReadAll_ErrorAbortaSinParciales(t *testing.T) {
	boom := errors.New("conexión perdida")
	calls := 0
	fetch := func(limit, offset int) ([]int, error) {
		calls++
		if offset >= 1000 {
			return nil, boom
		}
		page := make([]int, limit)
		return page, nil
	}

	all, err := paging.ReadAll(1000, fetch)

	require.ErrorIs(t, err, boom, "el error del almacén se propaga tal cual")
	assert.Nil(t, all, "una falla en cualquier página descarta lo ya acumulado")
	assert.Equal(t, 2, calls, "no se piden más páginas después de la falla")
}

func TestReadAll_TamanoInvalidoUsaElPorDefecto(t *testing.T) {
	store := &fakeStore{n: 10}

	all, err := paging.ReadAll(0, store.fetch)

	require.NoError(t, err)
	assert.Len(t, all, 10)
	assert.Equal(t, paging.DefaultPageSize, store.calls[0][0])
}
