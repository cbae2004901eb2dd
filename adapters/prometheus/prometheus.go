// Package prometheus provides the Prometheus implementation of router.Metrics.
package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/justloop/shardnav/router"
)

// routerMetrics implements router.Metrics using Prometheus.
type routerMetrics struct {
	routesTotal    *prometheus.CounterVec
	hostsDownTotal *prometheus.CounterVec
	flushesTotal   prometheus.Counter
	readmitted     prometheus.Counter
	exhaustedTotal prometheus.Counter
	downHosts      prometheus.Gauge
}

// NewRouterMetrics creates the router metrics and registers them on reg.
func NewRouterMetrics(reg prometheus.Registerer) router.Metrics {
	m := &routerMetrics{
		routesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shardnav_routes_total",
			Help: "Total number of routed operations",
		}, []string{"strategy", "broadcast"}),

		hostsDownTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shardnav_hosts_marked_down_total",
			Help: "Total number of times a host was excluded from the ring",
		}, []string{"host"}),

		flushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shardnav_flushes_total",
			Help: "Total number of flushes re-admitting down hosts",
		}),

		readmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shardnav_hosts_readmitted_total",
			Help: "Total number of hosts put back into the ring by flushes",
		}),

		exhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shardnav_host_list_exhausted_total",
			Help: "Total number of keyed operations failing because every host was down",
		}),

		downHosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shardnav_down_hosts",
			Help: "Number of hosts currently excluded from the ring",
		}),
	}

	reg.MustRegister(
		m.routesTotal,
		m.hostsDownTotal,
		m.flushesTotal,
		m.readmitted,
		m.exhaustedTotal,
		m.downHosts,
	)

	return m
}

func (m *routerMetrics) RouteCompleted(strategy string, broadcast bool) {
	m.routesTotal.WithLabelValues(strategy, strconv.FormatBool(broadcast)).Inc()
}

func (m *routerMetrics) HostMarkedDown(host string) {
	m.hostsDownTotal.WithLabelValues(host).Inc()
}

func (m *routerMetrics) DownHosts(count int) {
	m.downHosts.Set(float64(count))
}

func (m *routerMetrics) Flushed(readmitted int) {
	m.flushesTotal.Inc()
	m.readmitted.Add(float64(readmitted))
}

func (m *routerMetrics) HostListExhausted() {
	m.exhaustedTotal.Inc()
}

var _ router.Metrics = (*routerMetrics)(nil)
