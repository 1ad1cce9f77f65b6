package salad

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/common-workflow-language/schema-salad/de"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger configures the logger of this package and of package de. A nil
// logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
	de.SetLogger(l)
}
