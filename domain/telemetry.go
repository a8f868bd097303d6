package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// limitswap_ledger_height
	//
	// gauge that tracks the height of the last committed transaction
	LedgerHeightMetricName = "limitswap_ledger_height"

	// limitswap_ledger_tx_reverted_total
	//
	// counter that measures the number of transactions rolled back
	//
	// Has the following labels:
	// * tx - the name of the transaction
	LedgerTxRevertedMetricName = "limitswap_ledger_tx_reverted_total"

	// limitswap_pools_swap_total
	//
	// counter that measures the number of committed swaps
	//
	// Has the following labels:
	// * pool - the key of the pool swapped against
	PoolsSwapMetricName = "limitswap_pools_swap_total"

	// limitswap_events_publish_error_total
	//
	// counter that measures the number of errors that occur while publishing committed events
	//
	// Has the following labels:
	// * sink - the name of the failing sink
	EventsPublishErrorMetricName = "limitswap_events_publish_error_total"

	LedgerHeightGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: LedgerHeightMetricName,
			Help: "gauge that tracks the height of the last committed transaction",
		},
	)

	LedgerTxRevertedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: LedgerTxRevertedMetricName,
			Help: "counter that measures the number of transactions rolled back",
		},
		[]string{"tx"},
	)

	PoolsSwapCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: PoolsSwapMetricName,
			Help: "counter that measures the number of committed swaps",
		},
		[]string{"pool"},
	)

	EventsPublishErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: EventsPublishErrorMetricName,
			Help: "counter that measures the number of errors that occur while publishing committed events",
		},
		[]string{"sink"},
	)
)

func init() {
	prometheus.MustRegister(LedgerHeightGauge)
	prometheus.MustRegister(LedgerTxRevertedCounter)
	prometheus.MustRegister(PoolsSwapCounter)
	prometheus.MustRegister(EventsPublishErrorCounter)
}
