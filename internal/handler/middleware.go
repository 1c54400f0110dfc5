package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/GoArmGo/EstateApp/internal/metrics"
	"github.com/google/uuid"
)

// RequestLogger — middleware для логирования HTTP-запросов и сбора метрик.
// Каждому запросу присваивается собственный request_id.
func RequestLogger(logger *slog.Logger, m *metrics.HTTPMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)

			m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.statusCode)).Inc()
			m.RequestDuration.WithLabelValues(r.Method).Observe(duration.Seconds())
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
