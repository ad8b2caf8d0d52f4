// Package logging configures the standard logger and hands out named loggers
// whose debug output can be switched on with an environment variable.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger writes through the standard logger with a fixed prefix.
type Logger struct {
	name string
}

var (
	mu      sync.Mutex
	debug   bool
	loggers = map[string]*Logger{}
)

// Init sends the standard logger to w and enables debug output when level is
// "debug".
func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	mu.Lock()
	debug = strings.EqualFold(strings.TrimSpace(level), "debug")
	mu.Unlock()
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

// Get returns the logger for name, creating it on first use.
func Get(name string) *Logger {
	mu.Lock()
	defer mu.Unlock()
	if l := loggers[name]; l != nil {
		return l
	}
	l := &Logger{name: name}
	loggers[name] = l
	return l
}

// Printf always logs.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.output(format, args...)
}

// Debugf logs only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	l.output(format, args...)
}

func (l *Logger) output(format string, args ...interface{}) {
	// Skip output and the exported caller so Lshortfile names the call site.
	log.Output(3, fmt.Sprintf("[%s] ", l.name)+fmt.Sprintf(format, args...))
}
