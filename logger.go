package tinyscope

import (
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.DiscardHandler))
}

// Sets logger used by scopes created without WithLogger option.
// Records are discarded by default.
func SetDefaultLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}

	defaultLogger.Store(l)
}

func logger() *slog.Logger {
	return defaultLogger.Load()
}
