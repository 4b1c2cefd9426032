package entity

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity - unknown values fall back to info.
func ParseSeverity(value string) Severity {
	switch severity := Severity(value); severity {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return severity
	default:
		return SeverityInfo
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
