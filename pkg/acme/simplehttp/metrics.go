package simplehttp

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeFault      = "fault"
	outcomeNoResolver = "no_resolver"
)

var (
	challengeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acme_simplehttp_challenge_requests_total",
			Help: "ACME http-01 challenge requests by resolution outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(challengeRequests)
}

func countOutcome(outcome string) {
	challengeRequests.WithLabelValues(outcome).Inc()
}
