package view

import (
	"go.uber.org/zap"

	"github.com/skyforge/orrery/internal/telemetry"
)

// log.go wires the §7 error-category split into telemetry: resource
// creation failures (category 2) log at Warn, and of the per-frame
// degeneracies (category 3) an empty visible-item set logs at Debug. The
// other degeneracies (a span that collapses to far <= near, a shadow pass
// with no receiver or no caster) are skipped without a log line. Logging
// never changes the Status/bool an entry point returns; it is purely
// additive instrumentation.

var defaultLogger = telemetry.New(telemetry.Options{})

func warnResourceFailure(msg string, err error, fields ...zap.Field) {
	defaultLogger.Warn(msg, append(fields, zap.Error(err))...)
}

func debugDegenerate(msg string, fields ...zap.Field) {
	defaultLogger.Debug(msg, fields...)
}
