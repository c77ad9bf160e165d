// Package loghttp binds the logger's per-goroutine request context to HTTP
// handlers and emits one structured completion record per request.
//
// Handlers run synchronously on a single goroutine, so the middleware can set
// the goroutine-local logger context for the duration of ServeHTTP and clear
// it afterwards; every log call inside the handler automatically carries the
// request id. Handlers that spawn goroutines must propagate the request id
// themselves — goroutine contexts are deliberately not inherited.
package loghttp

import (
	"bufio"
	"net"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vixlabs/vixutil/ids"
	"github.com/vixlabs/vixutil/logger"
)

// RequestIDHeader is the header consulted for an incoming request id and set
// on every response.
const RequestIDHeader = "X-Request-ID"

// Middleware returns net/http middleware that assigns a request id, installs
// the logger context for the handler's goroutine, and logs a completion
// record (method, path, status, response size, duration) at a level derived
// from the status code: 5xx at Error, 4xx at Warn, everything else at Info.
//
// A nil logger uses the package singleton; a nil generator uses
// ids.NewRequestID.
func Middleware(l *logger.Logger, generator func() string) func(http.Handler) http.Handler {
	if generator == nil {
		generator = ids.NewRequestID
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := l
			if log == nil {
				log = logger.Default()
			}
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = generator()
			}
			w.Header().Set(RequestIDHeader, requestID)

			log.SetContext(logger.Context{RequestID: requestID, Module: "http"})
			defer log.ClearContext()

			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.LogKV(levelForStatus(ww.status), "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"bytes", ww.bytesWritten,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// ChiMiddleware is the chi-aware variant: it reuses the request id placed in
// the context by chi's RequestID middleware when present, falling back to the
// header and then to generation.
func ChiMiddleware(l *logger.Logger) func(http.Handler) http.Handler {
	base := Middleware(l, nil)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(RequestIDHeader) == "" {
				if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
					r.Header.Set(RequestIDHeader, reqID)
				}
			}
			base(next).ServeHTTP(w, r)
		})
	}
}

func levelForStatus(code int) logger.Level {
	switch {
	case code >= 500:
		return logger.LevelError
	case code >= 400:
		return logger.LevelWarn
	default:
		return logger.LevelInfo
	}
}

// responseWriter records the status code and byte count while passing the
// optional interfaces (Flusher, Hijacker, Pusher) through to the underlying
// writer.
type responseWriter struct {
	http.ResponseWriter
	status       int
	bytesWritten int64
	wroteHeader  bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(data)
	w.bytesWritten += int64(n)
	return n, err
}

// Flush implements http.Flusher for streaming responses.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker for WebSocket upgrades.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter for interface checks.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Push implements http.Pusher for HTTP/2 server push.
func (w *responseWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}
