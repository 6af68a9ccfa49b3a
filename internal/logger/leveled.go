package logger

// Leveled adapts Logger to key/value leveled logging interfaces such as
// the one go-retryablehttp accepts. Errors reported by such libraries
// are usually recoverable, so they are logged as warnings.
type Leveled struct {
	l *Logger
}

func (l *Logger) Leveled() Leveled {
	return Leveled{l: l}
}

func (a Leveled) Error(msg string, keysAndValues ...interface{}) {
	a.l.Warnw(msg, keysAndValues...)
}

func (a Leveled) Warn(msg string, keysAndValues ...interface{}) {
	a.l.Warnw(msg, keysAndValues...)
}

func (a Leveled) Info(msg string, keysAndValues ...interface{}) {
	a.l.Infow(msg, keysAndValues...)
}

func (a Leveled) Debug(msg string, keysAndValues ...interface{}) {
	a.l.Debugw(msg, keysAndValues...)
}
