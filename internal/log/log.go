// Package log provides the package-level logger shared by jbkv, storage,
// and codec. It defaults to discarding all output; library consumers that
// want visibility into mount/unmount/checksum events call SetLogger.
package log

import (
	"io"
	"log/slog"
)

// l is the shared logger. It starts out discarding everything so that
// importing jbkv never produces unwanted output, grounded on
// cmd/hiveexplorer/logger/logger.go's discard-by-default handler.
var l = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger replaces the shared logger. Pass nil to restore the discarding
// default.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	l = logger
}

// Debug logs a debug-level message. The core packages only log at this
// level: child create/unlink, mount, unmount, and checksum-mismatch events,
// never in a way that would surprise a caller who never touched SetLogger.
func Debug(msg string, args ...any) { l.Debug(msg, args...) }
