package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pombredanne/aur2/internal/render"
)

var tracer = otel.Tracer("github.com/pombredanne/aur2/internal/web")

// statusWriter remembers the status code a handler wrote so the access log
// and span can report it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// spanName names a request span after the route pattern that will serve it,
// keeping the set of span names bounded. Requests no route matches are named
// by method alone; the raw path travels as the http.target attribute.
func spanName(mux *http.ServeMux, r *http.Request) string {
	if _, pattern := mux.Handler(r); pattern != "" {
		return pattern
	}
	return r.Method
}

// middleware opens a span per request, injects the render logger into the
// context, and writes an access log line once the handler returns.
func (h *Handlers) middleware(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), spanName(mux, r), trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		))
		defer span.End()

		ctx = render.LoggingContext(ctx, slog.New(NewLogrusHandler(h.Log)))

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(sw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", sw.status))
		h.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start).String(),
		}).Info("request served")
	})
}
