// ABOUTME: Notification contract for reporting feed failures to the user
// ABOUTME: The sink is external; the core only synthesizes title/body/severity tuples

package interfaces

// Severity grades a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// Notification is a user-facing message about a reportable failure.
type Notification struct {
	Title    string
	Body     string
	Severity Severity
}

// NotificationSink receives notifications. Implementations decide how (and
// whether) to present them.
type NotificationSink interface {
	Notify(n Notification)
}
