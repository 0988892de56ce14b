// Package sklogimpl holds the pluggable Logger behind package sklog. It lives
// in its own package so that Logger implementations can import it without
// importing sklog.
package sklogimpl

import (
	"sync"
)

// Severity of a log line.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Logger is implemented by every log sink.
//
// depth is the number of stack frames between the original sklog call and
// Log. If format is empty the args are formatted with fmt.Sprint, otherwise
// with fmt.Sprintf.
type Logger interface {
	Log(depth int, severity Severity, format string, args ...interface{})
	Flush()
}

var (
	mtx    sync.RWMutex
	logger Logger
)

// SetLogger replaces the process-wide Logger.
func SetLogger(l Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	logger = l
}

func getLogger() Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return logger
}

// Log sends a line to the current Logger.
func Log(depth int, severity Severity, format string, args ...interface{}) {
	if l := getLogger(); l != nil {
		l.Log(depth+1, severity, format, args...)
	}
}

// Flush flushes the current Logger.
func Flush() {
	if l := getLogger(); l != nil {
		l.Flush()
	}
}
