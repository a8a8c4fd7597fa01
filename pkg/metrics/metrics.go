package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	OutcomeFound         = "found"
	OutcomeNotFound      = "not_found"
	OutcomeEnabled       = "enabled"
	OutcomeDisabled      = "disabled"
	OutcomeIndeterminate = "indeterminate"
	OutcomeUnavailable   = "unavailable"
)

var (
	// LDAP session metrics
	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlookup_ldap_sessions_total",
		Help: "LDAP sessions opened (dial + bind) by status",
	}, []string{"status"})

	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlookup_ldap_searches_total",
		Help: "LDAP search requests sent by status",
	}, []string{"status"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "adlookup_ldap_search_duration_seconds",
		Help:    "Duration of LDAP searches including session setup",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	})

	// Query service metrics
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlookup_lookups_total",
		Help: "User lookups by operation and outcome",
	}, []string{"operation", "outcome"})

	SweepTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adlookup_sweep_transitions_total",
		Help: "Account state transitions observed by the status sweep",
	}, []string{"to"})
)
