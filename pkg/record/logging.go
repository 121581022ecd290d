package record

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vireodb/vireo/pkg/observability"
	"github.com/vireodb/vireo/pkg/vireoerrors"
)

var pkgLogger atomic.Pointer[zap.Logger]

// SetLogger overrides the logger used for invariant-violation reports.
// By default the package logs through observability.GetLogger.
func SetLogger(l *zap.Logger) {
	pkgLogger.Store(l)
}

func logger() *zap.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return observability.GetLogger()
}

// fatalf reports a schema/batch invariant violation and aborts the current
// operation. These faults indicate a corrupted or mismatched schema/batch
// pairing produced by a bug elsewhere in the engine; continuing would risk
// silently returning wrong data.
func fatalf(format string, args ...interface{}) {
	err := vireoerrors.Newf(vireoerrors.ErrorTypeCorruption, format, args...)
	logger().Error("record invariant violation", zap.Error(err))
	panic(err)
}
