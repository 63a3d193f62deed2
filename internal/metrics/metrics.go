// Package metrics exports request, pagination and decode counters to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
)

var (
	registerOnce sync.Once

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgcore",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total remote calls by outcome.",
		},
		[]string{"method", "outcome"},
	)
	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tgcore",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Remote call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	pages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgcore",
			Subsystem: "pagination",
			Name:      "pages_total",
			Help:      "List pages fetched.",
		},
		[]string{"method"},
	)
	pageItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgcore",
			Subsystem: "pagination",
			Name:      "items_total",
			Help:      "Raw items received in list pages.",
		},
		[]string{"method"},
	)
	dropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tgcore",
			Subsystem: "decode",
			Name:      "dropped_total",
			Help:      "Unsupported variants skipped while decoding.",
		},
		[]string{"family", "tag"},
	)
)

// RegisterMetrics registers the collectors with the default registry once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(rpcRequests, rpcDuration, pages, pageItems, dropped)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

// Ensure Observer implements the interface.
var _ driven.Observer = Observer{}

// Observer records service events as Prometheus metrics.
type Observer struct{}

// NewObserver registers the collectors and returns an observer.
func NewObserver() Observer {
	RegisterMetrics()
	return Observer{}
}

// ObserveRequest counts a remote call and records its duration.
func (Observer) ObserveRequest(method string, duration time.Duration, err error) {
	rpcRequests.WithLabelValues(method, Outcome(err)).Inc()
	rpcDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObservePage counts a fetched page and its items.
func (Observer) ObservePage(method string, items int) {
	pages.WithLabelValues(method).Inc()
	pageItems.WithLabelValues(method).Add(float64(items))
}

// ObserveDropped counts a skipped variant.
func (Observer) ObserveDropped(family, tag string) {
	dropped.WithLabelValues(family, tag).Inc()
}

// Outcome maps an error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrDisconnected):
		return "disconnected"
	case errors.Is(err, domain.ErrInvalidPeer):
		return "invalid_peer"
	case errors.Is(err, domain.ErrServerRejected):
		return "rejected"
	case errors.Is(err, domain.ErrMalformedVariant):
		return "malformed"
	case errors.Is(err, domain.ErrUnsupportedVariant):
		return "unsupported"
	case errors.Is(err, domain.ErrTransportUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
