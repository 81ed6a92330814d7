package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultDuplicate   = "duplicate"
	ResultNotSignedUp = "not_signed_up"
	ResultFull        = "full"
	ResultInvalid     = "invalid"
	ResultError       = "error"
)

var (
	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Signup attempts by activity and result",
		},
		[]string{"activity", "result"},
	)

	Unregistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_unregistrations_total",
			Help: "Unregister attempts by activity and result",
		},
		[]string{"activity", "result"},
	)

	Participants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_participants",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)

	RosterSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activity_roster_subscribers",
			Help: "Open websocket roster streams",
		},
	)
)
