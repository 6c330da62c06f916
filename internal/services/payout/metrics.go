package payout

import "time"

// MetricsCollector defines the interface for collecting payout metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, errType string)
	RecordAccountCreated(vendorID string)
	RecordOnboardingCompleted(vendorID string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordAccountCreated(string)                   {}
func (n *NoopMetricsCollector) RecordOnboardingCompleted(string)              {}
