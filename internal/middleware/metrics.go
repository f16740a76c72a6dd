package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the RPC surface and the junta
// ledger.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	payments  *prometheus.CounterVec
	conflicts prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "familyfinance",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "familyfinance",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "familyfinance",
			Name:      "junta_payments_recorded_total",
			Help:      "Junta payments written, by method.",
		}, []string{"method"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "familyfinance",
			Name:      "junta_payment_conflicts_total",
			Help:      "Payment writes rejected because the day changed underneath them.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.payments, m.conflicts)
	return m
}

// Interceptor returns a Connect interceptor that counts and times unary calls.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// PaymentRecorded counts a stored junta payment. A nil *Metrics is a no-op.
func (m *Metrics) PaymentRecorded(method string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(method).Inc()
}

// PaymentConflict counts a rejected compare-and-swap payment write.
func (m *Metrics) PaymentConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}
