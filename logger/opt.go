package logger

import "log"

// A LoggerOptFn is a functional option configuring a RailsLogger when constructing a new one.
type LoggerOptFn func(*RailsLogger)

// WithEnv sets the environment RailsLogger is operating in.
func WithEnv(env string) func(*RailsLogger) {
	return func(l *RailsLogger) {
		l.env = env
	}
}

// WithLevel sets the log level RailsLogger uses.
func WithLevel(level LogLevel) func(*RailsLogger) {
	return func(l *RailsLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger RailsLogger uses.
func WithLogger(log *log.Logger) func(*RailsLogger) {
	return func(l *RailsLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*RailsLogger) {
	return func(l *RailsLogger) {
		l.skip = skip
	}
}
