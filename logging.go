package symbol

import "time"

// Pool operation names recorded on log events.
const (
	opIntern = "intern"
)

// InternLogEvent describes one pool operation for logging.
type InternLogEvent struct {
	Kind     string
	Op       string
	Text     string
	Duration time.Duration
	Err      error
}

// InternLogger records pool operations.
type InternLogger interface {
	LogIntern(InternLogEvent)
}

// InternLoggerFunc adapts a function to InternLogger.
type InternLoggerFunc func(InternLogEvent)

// LogIntern implements InternLogger.
func (f InternLoggerFunc) LogIntern(event InternLogEvent) {
	if f != nil {
		f(event)
	}
}
