// ABOUTME: Notification sink that routes user-facing messages to the logger
// ABOUTME: Headless deployments get failures in the log instead of a popup

package notify

import (
	"aggregator-core/core/interfaces"
)

// LoggerSink implements NotificationSink by logging every notification.
type LoggerSink struct {
	logger interfaces.Logger
}

// NewLoggerSink creates a sink writing to the given logger.
func NewLoggerSink(logger interfaces.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Notify logs the notification at a level matching its severity.
func (s *LoggerSink) Notify(n interfaces.Notification) {
	fields := map[string]interface{}{
		"title": n.Title,
	}
	switch n.Severity {
	case interfaces.SeverityCritical:
		s.logger.Error(n.Body, fields)
	case interfaces.SeverityWarning:
		s.logger.Warn(n.Body, fields)
	default:
		s.logger.Info(n.Body, fields)
	}
}
