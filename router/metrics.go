package router

// Metrics receives routing events, implementations must be safe for concurrent use
type Metrics interface {
	// RouteCompleted counts one successful GetDB call
	RouteCompleted(strategy string, broadcast bool)
	// HostMarkedDown counts a host being excluded from the ring
	HostMarkedDown(host string)
	// DownHosts reports the current number of excluded hosts
	DownHosts(count int)
	// Flushed counts a flush that re-admitted readmitted hosts
	Flushed(readmitted int)
	// HostListExhausted counts keyed calls failing because every host is down
	HostListExhausted()
}

type nopMetrics struct{}

func (nopMetrics) RouteCompleted(string, bool) {}
func (nopMetrics) HostMarkedDown(string)       {}
func (nopMetrics) DownHosts(int)               {}
func (nopMetrics) Flushed(int)                 {}
func (nopMetrics) HostListExhausted()          {}

// NopMetrics returns a Metrics that drops everything
func NopMetrics() Metrics { return nopMetrics{} }
