package logger

// Logger is the minimal logging surface garage components depend on.
// Implementations live under infra/logger so core packages stay free of
// logging backends.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]interface{})
}

// Nop discards every log call. It is the default for components constructed
// without an explicit logger.
type Nop struct{}

func (Nop) Debugf(string, ...interface{})       {}
func (Nop) Infof(string, ...interface{})        {}
func (Nop) Warnf(string, ...interface{})        {}
func (Nop) Errorf(string, ...interface{})       {}
func (Nop) Debugw(string, map[string]interface{}) {}
