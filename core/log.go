package core

// LogWriter is a function type for writing log lines
type LogWriter func(string)

var (
	// logPrintln is the global log sink (set by platform code)
	logPrintln LogWriter = func(s string) {} // No-op by default

	// logEnabled controls whether log output is active
	// Disabled by default; firmware enables it for debug builds,
	// host tools enable it from a flag
	logEnabled bool = false
)

// SetLogWriter sets the platform-specific log output function.
// Targets point this at println, host tools at stdout.
func SetLogWriter(w LogWriter) {
	logPrintln = w
}

// SetLogEnabled enables or disables log output
func SetLogEnabled(enabled bool) {
	logEnabled = enabled
}

// IsLogEnabled returns whether log output is enabled
func IsLogEnabled() bool {
	return logEnabled
}

// Logln writes one line through the platform writer when logging is on.
// Callers prefix lines with a subsystem tag, e.g. "[DANCE] role: LEADER".
func Logln(msg string) {
	if logEnabled && logPrintln != nil {
		logPrintln(msg)
	}
}
