// Package transport holds http.RoundTripper middlewares shared by the
// outbound clients.
package transport

import (
	"idresolve/pkg/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req).
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// WithLogging wraps next so every outbound request gets a request ID and a
// debug-level access log on the request's context logger. Query strings are
// left out of the log since they can carry the searched name.
func WithLogging(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		ctx := logger.WithFields(req.Context(), zap.String("requestID", uuid.NewString()))

		start := time.Now()
		res, err := next.RoundTrip(req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("host", req.URL.Host),
			zap.String("path", req.URL.Path),
			zap.Float64("latency", time.Since(start).Seconds()),
		}
		if err != nil {
			logger.Debug(ctx, "outbound request failed", append(fields, zap.Error(err))...)

			return nil, err //nolint: wrapcheck
		}

		logger.Debug(ctx, "outbound request", append(fields, zap.Int("status_code", res.StatusCode))...)

		return res, nil
	})
}
