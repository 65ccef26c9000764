package management

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single transient message slot.
type Notification struct {
	Message  string
	Severity Severity
	Open     bool
}

// NotificationChannel holds one notification. A new message replaces the
// current one even if it is still open.
type NotificationChannel struct {
	current Notification
}

// NewNotificationChannel returns a closed slot.
func NewNotificationChannel() *NotificationChannel {
	return &NotificationChannel{current: Notification{Severity: SeveritySuccess}}
}

// Current returns the slot contents, open or not.
func (n *NotificationChannel) Current() Notification { return n.current }

// Show opens the slot with msg, replacing whatever was there.
func (n *NotificationChannel) Show(sev Severity, msg string) {
	n.current = Notification{Message: msg, Severity: sev, Open: true}
}

// Success shows a success message.
func (n *NotificationChannel) Success(msg string) { n.Show(SeveritySuccess, msg) }

// Error shows an error message.
func (n *NotificationChannel) Error(msg string) { n.Show(SeverityError, msg) }

// Dismiss closes the slot but keeps its message and severity.
func (n *NotificationChannel) Dismiss() { n.current.Open = false }
