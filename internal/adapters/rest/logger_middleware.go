package rest

import (
	"net/http"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

// LoggerMiddleware: trace_id берется из X-Trace-ID (если это uuid) или генерируется,
// возвращается клиенту в том же заголовке
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(traceIDHeader, traceID)

			ctx, coreLogger := contextkeys.WithTrace(r.Context(), logger, traceID)
			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()
			httpLogger.Debug("Request started", port.Fields{"query": r.URL.RawQuery})

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := port.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			}
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				httpLogger.Error("Request finished", nil, fields)
			case ww.Status() >= http.StatusBadRequest:
				httpLogger.Warn("Request finished", fields)
			default:
				httpLogger.Info("Request finished", fields)
			}
		})
	}
}
