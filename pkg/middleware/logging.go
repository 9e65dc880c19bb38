package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/pos-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/pos-dashboard-api/pkg/log"
)

const (
	contextKeyRequestScope contextKey = "request_scope"

	slowRequestThreshold = 500 * time.Millisecond
)

// requestScope acompanha a requisição pela cadeia de middlewares. O AuthMiddleware
// grava a sessão aqui para que o log de conclusão saiba de qual tenant era a chamada.
type requestScope struct {
	tenantID int64
	userID   int64
}

func requestScopeFrom(ctx context.Context) (*requestScope, bool) {
	scope, ok := ctx.Value(contextKeyRequestScope).(*requestScope)
	return scope, ok
}

func (s *requestScope) fields() log.Fields {
	if s.tenantID == 0 {
		return log.Fields{}
	}
	return log.Fields{
		"tenant_id": s.tenantID,
		"user_id":   s.userID,
	}
}

// LoggingMiddleware registra o início e a conclusão de cada requisição com o ID de correlação
// e, quando houver sessão, o tenant e o usuário
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := log.WithCorrelationID(r.Context())
			scope := &requestScope{}
			ctx = context.WithValue(ctx, contextKeyRequestScope, scope)
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			requestLogger := log.ForContext(ctx).WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			if log.IsDevelopment() {
				requestLogger.Info("→ Iniciando requisição")
			} else {
				requestLogger.WithFields(log.Fields{
					"remote_addr":    r.RemoteAddr,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
					"content_length": r.ContentLength,
				}).Info("Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			logger := requestLogger.WithFields(scope.fields()).WithFields(log.Fields{
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			})

			message := completionMessage(lrw.statusCode, elapsed)
			switch {
			case lrw.statusCode >= 500:
				logger.Error(message)
			case lrw.statusCode >= 400:
				logger.Warn(message)
			default:
				logger.Info(message)
			}

			if elapsed > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
			}
		})
	}
}

func completionMessage(statusCode int, elapsed time.Duration) string {
	if !log.IsDevelopment() {
		return "Requisição finalizada"
	}

	symbol := "✓"
	if statusCode >= 400 {
		symbol = "✗"
	}
	return fmt.Sprintf("%s Completada em %s", symbol, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter guarda o status escrito pelo handler
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte panics em 500. Deve ficar depois do LoggingMiddleware
// para herdar o ID de correlação e para que a conclusão registre o 500.
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stackTrace := string(stack[:runtime.Stack(stack, false)])

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"error":  fmt.Sprint(recovered),
					"method": r.Method,
					"path":   r.URL.Path,
				})
				if scope, ok := requestScopeFrom(r.Context()); ok {
					logger = logger.WithFields(scope.fields())
				}

				if log.IsDevelopment() {
					logger.Error("❌ PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
				} else {
					logger.WithField("stack_trace", stackTrace).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
