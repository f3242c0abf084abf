// Package search coalesce búsquedas rápidas detrás de un retardo fijo:
// solo la entrada más reciente dispara una lectura y solo su resultado se
// entrega (gana la última petición).
package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay retardo observado para coalescer tecleo rápido.
const DefaultDelay = 350 * time.Millisecond

// Debouncer serializa búsquedas de una sesión. Una lectura iniciada por una
// entrada obsoleta no se cancela: si resuelve después de que empezó una más
// nueva, su resultado se descarta en la entrega.
type Debouncer[T any] struct {
	delay time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// New crea un debouncer; delay <= 0 usa DefaultDelay.
func New[T any](delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay}
}

// Submit encola una búsqueda. Tras el retardo ejecuta run; deliver solo se
// invoca si ninguna búsqueda más nueva fue encolada mientras tanto.
func (d *Debouncer[T]) Submit(ctx context.Context, run func(ctx context.Context) (T, error), deliver func(T, error)) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if ctx.Err() != nil {
			return
		}
		result, err := run(ctx)
		d.mu.Lock()
		stale := seq != d.seq
		d.mu.Unlock()
		if stale {
			// Resultado de una entrada obsoleta: se ignora.
			return
		}
		deliver(result, err)
	})
	d.mu.Unlock()
}

// Flush ejecuta de inmediato la búsqueda pendiente, si la hay (para tests y
// para confirmar con Enter sin esperar el retardo).
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	t := d.timer
	d.mu.Unlock()
	if t != nil && t.Stop() {
		t.Reset(0)
	}
}
