// Package monitoring holds the operator-facing output channels. Informational
// confirmations go through Logf, error-level reports through Errorf.
package monitoring

import (
	"log"
	"os"
)

var stderr = log.New(os.Stderr, "", log.LstdFlags)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Errorf reports error-level messages to the operator. It defaults to a logger
// on stderr and may be replaced by SetErrorLogger.
var Errorf func(format string, v ...interface{}) = stderr.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetErrorLogger replaces the error logger. Passing nil will set a no-op logger.
func SetErrorLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Errorf = func(string, ...interface{}) {}
		return
	}
	Errorf = f
}
