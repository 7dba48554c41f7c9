package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(dbPoolStats, storeErrorsTotal, storeUp) }

var (
	dbPoolStats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_stats",
			Help: "Current state of the database connection pool.",
		},
		[]string{"state"}, // 'total', 'idle', 'in_use'
	)

	storeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Failed record store calls by backend and operation.",
		},
		[]string{"backend", "op"},
	)

	storeUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_up",
			Help: "1 when the last periodic store ping succeeded.",
		},
		[]string{"backend"},
	)
)

func SetDBPoolStats(total, idle, inUse int32) {
	dbPoolStats.WithLabelValues("total").Set(float64(total))
	dbPoolStats.WithLabelValues("idle").Set(float64(idle))
	dbPoolStats.WithLabelValues("in_use").Set(float64(inUse))
}

func IncStoreError(backend, op string) {
	storeErrorsTotal.WithLabelValues(norm(backend), norm(op)).Inc()
}

func SetStoreUp(backend string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	storeUp.WithLabelValues(norm(backend)).Set(v)
}
