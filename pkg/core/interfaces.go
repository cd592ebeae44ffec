package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// NopLogger returns a Logger that discards everything written to it
func NopLogger() Logger {
	return nopLogger{}
}
