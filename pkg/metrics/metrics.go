// Package metrics names the Prometheus series exported by the WADM client.
// Collectors live in the packages that update them (client, pagination) and
// register on Registry via promauto; the gateway serves Gatherer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the registerer all WADM collectors are registered on.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer serving the collectors registered on Registry.
var Gatherer = prometheus.DefaultGatherer

// Names of the exported series.
const (
	RequestsTotal     = "wadm_requests_total"
	RequestDuration   = "wadm_request_duration_seconds"
	ErrorsTotal       = "wadm_errors_total"
	PagesFetchedTotal = "wadm_pages_fetched_total"
)

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - wadm_requests_total{endpoint, status} (Counter): requests by endpoint kind and HTTP
//     status code, or "network_error" when no response arrived
//   - wadm_request_duration_seconds{endpoint} (Histogram): request duration by endpoint kind
//   - wadm_errors_total{class} (Counter): failed requests by class (network, decode)
//
// Pagination Metrics (pkg/pagination):
//   - wadm_pages_fetched_total{listing} (Counter): pages aggregated by listing (artworks, album)
//
// Example Prometheus Queries:
//
//   # Share of non-2xx responses
//   sum(rate(wadm_requests_total{status!~"2.."}[5m])) / sum(rate(wadm_requests_total[5m]))
//
//   # P95 listing latency
//   histogram_quantile(0.95, rate(wadm_request_duration_seconds_bucket{endpoint="artworks"}[5m]))
//
//   # Decode failures (API shape changed)
//   rate(wadm_errors_total{class="decode"}[15m]) > 0
