package obs

import (
	"context"
	"crew-route-service/internal/platform/logger"
	"time"

	"go.uber.org/zap"
)

// Time starts timing an operation and returns a func to defer with the
// operation's named error result. Duration is logged and observed in
// the operation histogram.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		result := "ok"
		fields := []zap.Field{zap.String("op", name), zap.Int64("dur_ms", dur.Milliseconds())}
		if errp != nil && *errp != nil {
			result = "error"
			fields = append(fields, zap.Error(*errp))
		}
		OperationDuration.WithLabelValues(name, result).Observe(dur.Seconds())

		logger.WithContext(ctx).Debug("operation finished", fields...)
	}
}
