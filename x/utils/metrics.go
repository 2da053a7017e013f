package utils

import (
	"strconv"
	"time"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a decorator that counts delivered transactions by message path
// and result code, and observes how long their processing took.
type Metrics struct {
	delivered *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ estate.Decorator = Metrics{}

// NewMetrics registers the collectors with given registry and returns the
// decorator updating them.
func NewMetrics(registry prometheus.Registerer) Metrics {
	factory := promauto.With(registry)
	return Metrics{
		delivered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "delivered_tx_total",
			Help:      "Total number of delivered transactions by message path and result code.",
		}, []string{"path", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "estate",
			Name:      "deliver_duration_seconds",
			Help:      "Time spent delivering a transaction, by message path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
}

// Check just passes the request along
func (m Metrics) Check(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Checker) (*estate.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the outcome of every delivery, failed ones included.
func (m Metrics) Deliver(ctx estate.Context, db estate.KVStore, tx estate.Tx, next estate.Deliverer) (*estate.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	path := estate.GetPath(tx)
	code := "0"
	if err != nil {
		code = strconv.FormatUint(uint64(errors.Code(err)), 10)
	}
	m.delivered.WithLabelValues(path, code).Inc()
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return res, err
}
