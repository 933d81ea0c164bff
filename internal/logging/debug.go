package logging

import (
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

const debugEnvVar = "WL_DEBUG"

var (
	mu     sync.RWMutex
	logger = log.New(os.Stderr, "", log.LstdFlags)
	forced atomic.Bool
)

// SetOutput redirects all log output, mainly for tests and the daemon log file
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetDebug turns debug output on regardless of WL_DEBUG
func SetDebug(on bool) {
	forced.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via SetDebug or the WL_DEBUG environment variable
func DebugEnabled() bool {
	return forced.Load() || os.Getenv(debugEnvVar) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		output("DEBUG ", format, args...)
	}
}

// Debugln prints a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.RLock()
		defer mu.RUnlock()
		logger.Println(append([]interface{}{"DEBUG"}, args...)...)
	}
}

// Infof logs an informational message
func Infof(format string, args ...interface{}) {
	output("INFO ", format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...interface{}) {
	output("ERROR ", format, args...)
}

func output(level, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Printf(level+format, args...)
}
