package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// limitswap_limitorder_usecase_orders_created_total
	//
	// counter that measures the number of orders created
	OrdersCreatedMetricName = "limitswap_limitorder_usecase_orders_created_total"

	// limitswap_limitorder_usecase_orders_filled_total
	//
	// counter that measures the number of fills
	OrdersFilledMetricName = "limitswap_limitorder_usecase_orders_filled_total"

	// limitswap_limitorder_usecase_orders_closed_total
	//
	// counter that measures the number of orders closed
	OrdersClosedMetricName = "limitswap_limitorder_usecase_orders_closed_total"

	// limitswap_limitorder_usecase_error_total
	//
	// counter that measures the number of errors returned by limit order operations
	//
	// Has the following labels:
	// * operation - one of create, fill, close
	// * err - the type of the error occurred
	LimitOrderErrorMetricName = "limitswap_limitorder_usecase_error_total"

	// limitswap_limitorder_usecase_fill_amount_used
	//
	// histogram of the share of the offered amount used by fills
	FillAmountUsedRatioMetricName = "limitswap_limitorder_usecase_fill_amount_used"

	// limitswap_limitorder_fillbot_fills_total
	//
	// counter that measures the number of fills submitted by the fill bot
	//
	// Has the following labels:
	// * result - success or error
	FillBotFillsMetricName = "limitswap_limitorder_fillbot_fills_total"

	OrdersCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: OrdersCreatedMetricName,
			Help: "counter that measures the number of orders created",
		},
	)

	OrdersFilledCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: OrdersFilledMetricName,
			Help: "counter that measures the number of fills",
		},
	)

	OrdersClosedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: OrdersClosedMetricName,
			Help: "counter that measures the number of orders closed",
		},
	)

	LimitOrderErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: LimitOrderErrorMetricName,
			Help: "counter that measures the number of errors returned by limit order operations",
		},
		[]string{"operation", "err"},
	)

	FillAmountUsedRatioHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    FillAmountUsedRatioMetricName,
			Help:    "histogram of the share of the offered amount used by fills",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1},
		},
	)

	FillBotFillsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: FillBotFillsMetricName,
			Help: "counter that measures the number of fills submitted by the fill bot",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(OrdersCreatedCounter)
	prometheus.MustRegister(OrdersFilledCounter)
	prometheus.MustRegister(OrdersClosedCounter)
	prometheus.MustRegister(LimitOrderErrorCounter)
	prometheus.MustRegister(FillAmountUsedRatioHistogram)
	prometheus.MustRegister(FillBotFillsCounter)
}
