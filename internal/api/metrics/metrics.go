// Package metrics defines all custom Prometheus metrics for the EventSphere
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens implicitly via promauto against the default
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventsphere"

// SignInsTotal counts authentication operations.
// Labels:
//   - method: "password", "federated", or "signup"
//   - result: "ok" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in/sign-up attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// RegistrationsProcessedTotal counts registration submissions leaving the
// dispatcher workers.
// Label:
//   - result: "accepted", "duplicate", or "error"
var RegistrationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_processed_total",
		Help:      "Total number of registration submissions processed, by result.",
	},
	[]string{"result"},
)

// RegistrationQueueDepth tracks submissions waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var RegistrationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registration_queue_depth",
		Help:      "Current number of submissions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// CatalogMergedEvents tracks the size of the merged event view.
var CatalogMergedEvents = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_merged_events",
		Help:      "Current number of events in the merged seed+remote view.",
	},
)

// EventsSavedTotal counts organizer writes to the remote event collection.
// Label:
//   - result: "ok" or "error"
var EventsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_saved_total",
		Help:      "Total number of event documents written to the remote store.",
	},
	[]string{"result"},
)
