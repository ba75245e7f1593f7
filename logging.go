package arena

import "github.com/sirupsen/logrus"

// Level is the severity of a log emitted by the core. It maps onto the
// four levels named in the logging sink contract.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelSuccess
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Logger is the logging sink consumed by the core. Calls are fire-and-forget:
// the core never branches on a sink's return value because there isn't one.
type Logger interface {
	Log(sourceTag, message string, level Level)
}

// NopSink discards every log call. It is the default sink of an Arena
// constructed without WithLogger and is convenient in tests.
type NopSink struct{}

func (NopSink) Log(string, string, Level) {}

// LogrusSink adapts a logrus.FieldLogger to the core's Logger contract.
// sourceTag is attached as a structured field rather than interpolated into
// the message, matching how logrus is used elsewhere for tagged components.
type LogrusSink struct {
	Entry logrus.FieldLogger
}

// NewLogrusSink builds a LogrusSink around the given logger, or the package
// standard logger if l is nil.
func NewLogrusSink(l *logrus.Logger) LogrusSink {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return LogrusSink{Entry: l}
}

func (s LogrusSink) Log(sourceTag, message string, level Level) {
	if !CurrentConfig().EnableLogging {
		return
	}
	entry := s.Entry.WithField("component", sourceTag)
	switch level {
	case LevelWarning:
		entry.Warn(message)
	case LevelError:
		entry.Error(message)
	case LevelSuccess:
		entry.WithField("result", "success").Info(message)
	default:
		entry.Info(message)
	}
}

// emit is the internal helper every core component funnels its logging
// through: it re-reads the config on every call (never cached) and no-ops
// entirely when logging is disabled or no sink is attached.
func emit(sink Logger, sourceTag, message string, level Level) {
	if sink == nil || !CurrentConfig().EnableLogging {
		return
	}
	sink.Log(sourceTag, message, level)
}
