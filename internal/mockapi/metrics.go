package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evrental_mock_requests_total",
		Help: "Requests served by the dev settlement service.",
	}, []string{"method", "route", "status"})

	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evrental_mock_settlements_total",
		Help: "Returns finalized by the dev settlement service, by payment status.",
	}, []string{"payment_status"})
)
