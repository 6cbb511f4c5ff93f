package census

import "log"

// Logger is the progress reporting surface used across the package.
// It is always passed in explicitly — there is no ambient logger — so a
// host can route progress output through its own run logger.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

type stdLogger struct{}

func (stdLogger) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// DefaultLogger returns a Logger backed by the standard library log package.
func DefaultLogger() Logger {
	return stdLogger{}
}

// NopLogger discards all progress output.
type NopLogger struct{}

func (NopLogger) Printf(format string, v ...interface{}) {}
