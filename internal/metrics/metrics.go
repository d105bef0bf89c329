package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HostelAllocations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "campuserp", Name: "hostel_allocations_total", Help: "Successful hostel room allocations",
	})
	RouteAssignments = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "campuserp", Name: "route_assignments_total", Help: "Successful transport route assignments",
	})
	PaymentsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campuserp", Name: "payments_recorded_total", Help: "Payments recorded by kind",
	}, []string{"kind"})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campuserp", Name: "http_request_seconds", Help: "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(HostelAllocations, RouteAssignments, PaymentsRecorded, RequestDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(method, path string, d time.Duration) {
	RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
