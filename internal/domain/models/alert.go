package models

import "time"

// AlertSeverity orders alerts from most to least urgent.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// AlertType indicates which check produced the alert.
type AlertType string

const (
	AlertPrice              AlertType = "price"
	AlertSignalChange       AlertType = "signal_change"
	AlertCompositeThreshold AlertType = "composite_threshold"
	AlertDivergence         AlertType = "divergence"
)

// Alert is an actionable notification produced by one pipeline run.
// Acknowledged is reserved for consumers and always false at creation.
type Alert struct {
	ID           string        `json:"id"`
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	Title        string        `json:"title"`
	Message      string        `json:"message"`
	Timestamp    time.Time     `json:"timestamp"`
	Acknowledged bool          `json:"acknowledged"`
}
