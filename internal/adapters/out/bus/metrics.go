package bus

import "github.com/prometheus/client_golang/prometheus"

// Metrics records bus throughput. A nil *Metrics records nothing.
type Metrics struct {
	published    *prometheus.CounterVec
	dropped      *prometheus.CounterVec
	failed       *prometheus.CounterVec
	delivered    *prometheus.CounterVec
	disconnected prometheus.Counter
	subscribers  prometheus.Gauge
}

// NewMetrics registers the bus metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_events_published_total",
			Help: "Events accepted by the dispatcher queue.",
		}, []string{"event"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_events_dropped_total",
			Help: "Events dropped because the dispatcher queue was full.",
		}, []string{"event"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_events_failed_total",
			Help: "Events the sink failed to accept.",
		}, []string{"event"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_events_delivered_total",
			Help: "Events handed to a local subscriber.",
		}, []string{"event"}),
		disconnected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bus_subscribers_disconnected_total",
			Help: "Subscribers disconnected because their buffer was full.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bus_subscribers",
			Help: "Currently connected subscribers.",
		}),
	}
	reg.MustRegister(m.published, m.dropped, m.failed, m.delivered, m.disconnected, m.subscribers)
	return m
}

func (m *Metrics) IncPublished(event string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(event).Inc()
}

func (m *Metrics) IncDropped(event string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(event).Inc()
}

func (m *Metrics) IncFailed(event string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(event).Inc()
}

func (m *Metrics) IncDelivered(event string) {
	if m == nil {
		return
	}
	m.delivered.WithLabelValues(event).Inc()
}

func (m *Metrics) IncDisconnected() {
	if m == nil {
		return
	}
	m.disconnected.Inc()
}

func (m *Metrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.subscribers.Set(float64(n))
}
