// Package observability expone métricas Prometheus de la aplicación con un
// registry propio (sin colectores globales).
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados terminales del flujo de commit de salidas.
const (
	CommitResultSuccess       = "success"
	CommitResultValidation    = "validation"
	CommitResultResolution    = "resolution"
	CommitResultStockConflict = "stock_conflict"
	CommitResultPersistence   = "persistence"
)

// Metrics agrupa los contadores de la aplicación. Todos los métodos toleran
// receptor nil para que los casos de uso puedan construirse sin métricas en tests.
type Metrics struct {
	registry      *prometheus.Registry
	handler       http.Handler
	exitCommits   *prometheus.CounterVec
	stepFailures  *prometheus.CounterVec
	kardexReports prometheus.Counter
}

// NewMetrics inicializa el registry y los contadores.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	exitCommits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_exit_commits_total",
		Help: "Commits de salida por resultado terminal.",
	}, []string{"result"})
	stepFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_commit_step_failures_total",
		Help: "Fallas de persistencia del commit por paso.",
	}, []string{"step"})
	kardexReports := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "almacen_kardex_reports_total",
		Help: "Informes kardex servidos.",
	})
	registry.MustRegister(exitCommits, stepFailures, kardexReports)
	return &Metrics{
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		exitCommits:   exitCommits,
		stepFailures:  stepFailures,
		kardexReports: kardexReports,
	}
}

// Handler devuelve el http.Handler del endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ExitCommit registra el resultado terminal de un commit de salida.
func (m *Metrics) ExitCommit(result string) {
	if m == nil {
		return
	}
	m.exitCommits.WithLabelValues(result).Inc()
}

// CommitStepFailure registra una falla de persistencia en un paso concreto.
func (m *Metrics) CommitStepFailure(step string) {
	if m == nil {
		return
	}
	m.stepFailures.WithLabelValues(step).Inc()
}

// KardexReportServed registra un informe kardex servido.
func (m *Metrics) KardexReportServed() {
	if m == nil {
		return
	}
	m.kardexReports.Inc()
}
