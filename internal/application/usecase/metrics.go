package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credit_decisions_total",
		Help: "Eligibility decisions by workflow and outcome.",
	},
	[]string{"workflow", "outcome"},
)

func recordDecision(workflow string, approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	decisionsTotal.WithLabelValues(workflow, outcome).Inc()
}
