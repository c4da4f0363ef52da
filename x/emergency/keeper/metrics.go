package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EmergencyMetrics holds Prometheus metrics for the approval workflow
type EmergencyMetrics struct {
	Proposals  *prometheus.CounterVec
	Rejections *prometheus.CounterVec
}

var (
	emergencyMetricsOnce sync.Once
	emergencyMetrics     *EmergencyMetrics
)

// NewEmergencyMetrics creates and registers emergency metrics (singleton pattern)
func NewEmergencyMetrics() *EmergencyMetrics {
	emergencyMetricsOnce.Do(func() {
		emergencyMetrics = &EmergencyMetrics{
			Proposals: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "emergency",
					Name:      "proposal_events_total",
					Help:      "Proposal lifecycle transitions",
				},
				[]string{"event"},
			),
			Rejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "emergency",
					Name:      "rejections_total",
					Help:      "Rejected proposal operations",
				},
				[]string{"op"},
			),
		}
	})
	return emergencyMetrics
}
