package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commandDispatchCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_command_dispatches",
	Help: "Management command messages dispatched, by command",
}, []string{"command"})
