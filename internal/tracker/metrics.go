package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pingcraft_ping_duration_seconds",
		Help:    "Round trip time of the status exchange per server",
		Buckets: prometheus.DefBuckets,
	}, []string{"server"})
	playersOnline = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pingcraft_players_online",
		Help: "Players currently online per server",
	}, []string{"server"})
	playersMax = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pingcraft_players_max",
		Help: "Player capacity per server",
	}, []string{"server"})
	serverUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pingcraft_up",
		Help: "Whether the last status exchange succeeded per server",
	}, []string{"server"})
	pingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pingcraft_ping_failures_total",
		Help: "Total number of failed status exchanges per server",
	}, []string{"server"})
)
