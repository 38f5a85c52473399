// Package notify is the caller-facing notification channel. Presentation
// (toast rendering, auto-dismiss) lives above this interface; the core only
// chooses the invocation points and severities.
package notify

import "log/slog"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityAlert   Severity = "alert"
)

// Notifier receives user-facing messages.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(string, Severity) {}

// SlogNotifier writes notifications to a structured logger; the CLI layers
// colored rendering on top of the same interface.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) Notify(message string, severity Severity) {
	if n.Logger == nil {
		return
	}
	switch severity {
	case SeverityError, SeverityAlert:
		n.Logger.Warn(message, "severity", string(severity))
	default:
		n.Logger.Info(message, "severity", string(severity))
	}
}
