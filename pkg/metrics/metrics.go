// Package metrics métricas Prometheus de la API: peticiones HTTP y decisiones de acceso.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/negocify-api/internal/domain"
)

// Metrics contadores e histogramas registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthOutcomesTotal   *prometheus.CounterVec
	AccessDenialsTotal  *prometheus.CounterVec
}

// New crea y registra las métricas. Con reg nil usa un registry nuevo con los colectores de proceso y Go.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negocify_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "negocify_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negocify_auth_outcomes_total",
				Help: "Resultados de la autenticación por petición",
			},
			[]string{"outcome"},
		),
		AccessDenialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negocify_access_denials_total",
				Help: "Peticiones denegadas por falta de permisos",
			},
			[]string{"path"},
		),
	}
	reg.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.AuthOutcomesTotal, m.AccessDenialsTotal)
	return m
}

// Resultados de autenticación.
const (
	OutcomeOK                = "ok"
	OutcomeMissingToken      = "missing_token"
	OutcomeInvalidToken      = "invalid_token"
	OutcomeExpiredToken      = "expired_token"
	OutcomeUserNotFound      = "user_not_found"
	OutcomePermissionFailure = "permission_resolution"
	OutcomeInternal          = "internal"
)

// AuthOutcome clasifica el resultado de Authenticate.
func AuthOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrMissingToken):
		return OutcomeMissingToken
	case errors.Is(err, domain.ErrExpiredToken):
		return OutcomeExpiredToken
	case errors.Is(err, domain.ErrInvalidToken):
		return OutcomeInvalidToken
	case errors.Is(err, domain.ErrUserNotFound):
		return OutcomeUserNotFound
	case errors.Is(err, domain.ErrPermissionResolution):
		return OutcomePermissionFailure
	default:
		return OutcomeInternal
	}
}

// ObserveAuth registra el resultado de una autenticación.
func (m *Metrics) ObserveAuth(err error) {
	if m == nil {
		return
	}
	m.AuthOutcomesTotal.WithLabelValues(AuthOutcome(err)).Inc()
}

// ObserveDenial registra una petición rechazada con 403.
func (m *Metrics) ObserveDenial(path string) {
	if m == nil {
		return
	}
	m.AccessDenialsTotal.WithLabelValues(path).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry registry subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
