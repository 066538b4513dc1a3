// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for keyset operations.
// The pure validators in pkg/keyset are never instrumented directly; the
// store and tooling layers record outcomes here so the core stays
// side-effect free.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all keyset metrics.
	Namespace = "keyset"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelReason    = "reason"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpValidate   = "validate"
	OpSave       = "save"
	OpLoad       = "load"
	OpDelete     = "delete"
	OpList       = "list"
	OpGenerate   = "generate"
	OpRotate     = "rotate"
	OpSetPrimary = "set_primary"
)

var (
	// OperationsTotal tracks keyset operations by type and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of keyset operations by type and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// ValidationFailuresTotal tracks validation failures by the check that
	// rejected the keyset (e.g. "no_enabled_keys", "multiple_primary").
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of keyset validation failures by reason",
		},
		[]string{LabelReason},
	)

	// OperationDuration tracks the duration of keyset operations in seconds.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of keyset operations in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{LabelOperation},
	)
)

// RecordOperation increments the operation counter with the given outcome.
func RecordOperation(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordValidationFailure increments the validation failure counter.
func RecordValidationFailure(reason string) {
	ValidationFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveDuration records the elapsed time for an operation that started at
// the given time.
func ObserveDuration(operation string, start time.Time) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
