package rate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FeedFetchTotal  *prometheus.CounterVec
	RefreshTotal    *prometheus.CounterVec
	LastSuccessTime prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeedFetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "currencytracker_feed_fetch_total",
			Help: "Feed calls by result: ok or the failure kind",
		}, []string{"result"}),
		RefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "currencytracker_rate_refresh_total",
			Help: "Rate refreshes by result: fresh or stale",
		}, []string{"result"}),
		LastSuccessTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "currencytracker_rate_last_success_timestamp_seconds",
			Help: "Unix time of the last refresh that applied feed rates",
		}),
	}
}

func (m *Metrics) observeFetch(result string) {
	if m == nil {
		return
	}
	m.FeedFetchTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRefresh(stale bool, unixTime int64) {
	if m == nil {
		return
	}
	if stale {
		m.RefreshTotal.WithLabelValues("stale").Inc()
		return
	}
	m.RefreshTotal.WithLabelValues("fresh").Inc()
	m.LastSuccessTime.Set(float64(unixTime))
}
