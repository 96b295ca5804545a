// Package metrics defines the Prometheus collectors of the sync layer and
// the reference server. All methods are safe on a nil receiver so callers can
// run without metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/scope/internal/apperr"
)

const namespace = "scope"

// Outcome labels for remote calls.
const (
	OutcomeOK = "ok"
)

// Sync tracks the coordinator's routing decisions.
type Sync struct {
	RemoteCalls   *prometheus.CounterVec
	Fallbacks     prometheus.Counter
	LocalWrites   prometheus.Counter
	Reconciles    prometheus.Counter
	SessionResets prometheus.Counter
	RemoteEnabled prometheus.Gauge
}

// NewSync creates the coordinator collectors and registers them with reg
// when reg is non-nil.
func NewSync(reg prometheus.Registerer) *Sync {
	m := &Sync{
		RemoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "remote_calls_total",
			Help:      "Calls made to the remote store by operation and outcome.",
		}, []string{"op", "outcome"}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "fallbacks_total",
			Help:      "Switches from remote to local mode.",
		}),
		LocalWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "local_writes_total",
			Help:      "Mutations applied to the local cache only.",
		}),
		Reconciles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "reconciles_total",
			Help:      "Duplicate-key responses resolved by re-fetching the remote record.",
		}),
		SessionResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "session_resets_total",
			Help:      "Sessions invalidated after the remote store answered 401.",
		}),
		RemoteEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "remote_enabled",
			Help:      "1 while mutations are routed to the remote store.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RemoteCalls, m.Fallbacks, m.LocalWrites, m.Reconciles, m.SessionResets, m.RemoteEnabled)
	}
	return m
}

// ObserveRemote records one remote call.
func (m *Sync) ObserveRemote(op string, err error) {
	if m == nil {
		return
	}
	m.RemoteCalls.WithLabelValues(op, Outcome(err)).Inc()
}

func (m *Sync) IncFallback() {
	if m != nil {
		m.Fallbacks.Inc()
	}
}

func (m *Sync) IncLocalWrite() {
	if m != nil {
		m.LocalWrites.Inc()
	}
}

func (m *Sync) IncReconcile() {
	if m != nil {
		m.Reconciles.Inc()
	}
}

func (m *Sync) IncSessionReset() {
	if m != nil {
		m.SessionResets.Inc()
	}
}

func (m *Sync) SetRemoteEnabled(enabled bool) {
	if m == nil {
		return
	}
	if enabled {
		m.RemoteEnabled.Set(1)
	} else {
		m.RemoteEnabled.Set(0)
	}
}

// Outcome turns an error into a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	return apperr.KindOf(err).String()
}

// HTTP tracks requests served by the reference server.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP creates the server collectors and registers them with reg when reg
// is non-nil.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration)
	}
	return m
}

// Observe records one served request.
func (m *HTTP) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.Duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
