// Package paging implementa la lectura por lotes de resultados potencialmente
// ilimitados del almacén (histórico del libro).
package paging

// DefaultPageSize tamaño de página observado para lecturas históricas.
const DefaultPageSize = 1000

// Fetch obtiene la página de filas [offset, offset+limit), preservando el orden.
type Fetch[T any] func(limit, offset int) ([]T, error)

// ReadAll materializa el resultado completo pidiendo páginas sucesivas en
// orden estricto (nunca en paralelo) hasta recibir una página más corta que
// el tamaño pedido, incluida la vacía: esa es la última. Una falla en
// cualquier página aborta la lectura completa con el error del almacén y
// descarta lo ya acumulado: no se devuelven resultados parciales.
func ReadAll[T any](pageSize int, fetch Fetch[T]) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	var all []T
	for offset := 0; ; offset += pageSize {
		page, err := fetch(pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
