package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "groupwarden_event_duration_sec",
	Help: "Total duration of moderation event processing",
}, []string{"type"})

var eventProcessCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_event_processed",
	Help: "Number of events processed",
}, []string{"type"})

var eventErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_event_errors",
	Help: "Number of events which failed processing",
}, []string{"type"})

var eventInvalidCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_event_invalid",
	Help: "Number of malformed events ignored",
}, []string{"type"})

var eventSuppressedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "groupwarden_event_suppressed",
	Help: "Number of events suppressed by the chat lock gate",
})

var ruleTriggerCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_rule_triggers",
	Help: "Number of rule firings",
}, []string{"rule"})

var actionTakedownCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupwarden_new_action_takedowns",
	Help: "Number of new account takedowns",
}, []string{"rule"})
