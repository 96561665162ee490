// internal/logger/interface.go

package logger

// Recorder is the recording surface of a Logger, used by the binaries so the
// record loop can be exercised without touching the filesystem.
type Recorder interface {
	// Record renders message at level against ctx and dispatches it to the
	// console, the buffer or the log file.
	Record(level Level, message string, ctx ...Context) error

	// Dump writes buffered records to the log file. It is a no-op when
	// nothing is buffered.
	Dump() error

	// Buffering reports whether records are held in memory until Dump.
	Buffering() bool
}

// Ensure Logger implements the Recorder interface.
var _ Recorder = (*Logger)(nil)
