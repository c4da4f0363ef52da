package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics holds all Prometheus metrics for the ledger
type LedgerMetrics struct {
	// Swap metrics
	SwapsTotal     *prometheus.CounterVec
	SwapVolume     *prometheus.CounterVec
	SwapLatency    prometheus.Histogram
	SwapImpactBps  prometheus.Histogram
	SwapFeesTotal  *prometheus.CounterVec
	GuardRejection *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal prometheus.Gauge

	// Emergency metrics
	Paused             prometheus.Gauge
	EmergencyWithdraws *prometheus.CounterVec
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

// NewLedgerMetrics creates and registers ledger metrics (singleton pattern)
func NewLedgerMetrics() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = &LedgerMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted",
				},
				[]string{"asset", "direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"asset", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapImpactBps: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "swap_price_impact_bps",
					Help:      "Realized price impact of executed swaps in basis points",
					Buckets:   []float64{10, 30, 50, 100, 250, 500, 1000, 2500},
				},
			),
			SwapFeesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "swap_fees_total",
					Help:      "Total swap fees retained by pools",
				},
				[]string{"asset", "denom"},
			),
			GuardRejection: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "guard_rejections_total",
					Help:      "Operations rejected by an economic guard",
				},
				[]string{"guard"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"asset", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"asset", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"asset", "side"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "share_supply",
					Help:      "Total share supply per pool",
				},
				[]string{"asset"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Number of pools",
				},
			),
			Paused: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "paused",
					Help:      "1 while the ledger is paused",
				},
			),
			EmergencyWithdraws: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "nativeswap",
					Subsystem: "amm",
					Name:      "emergency_withdrawals_total",
					Help:      "Privileged withdrawals executed while paused",
				},
				[]string{"asset"},
			),
		}
	})
	return ledgerMetrics
}
