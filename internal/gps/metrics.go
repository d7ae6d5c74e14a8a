package gps

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evrental_telemetry_reconnects_total",
		Help: "Telemetry websocket reconnects after a failure, by reason.",
	}, []string{"reason"})

	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evrental_telemetry_frames_total",
		Help: "Telemetry frames received.",
	})
)
