package contacts

// Severity is the display hint attached to a change notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Observer is notified synchronously after every successful mutation.
type Observer interface {
	DataChanged(message string, severity Severity)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(message string, severity Severity)

func (f ObserverFunc) DataChanged(message string, severity Severity) { f(message, severity) }
