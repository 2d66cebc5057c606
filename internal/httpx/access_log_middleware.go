package httpx

import (
	"log"
	"net/http"
	"time"
)

// statusRecorder remembers the status and size of what the handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
	started bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.started {
		return
	}
	rec.status = code
	rec.started = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.started {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.written += int64(n)
	return n, err
}

// AccessLogMiddleware writes one line per request once the handler returns.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("access method=%s path=%s query=%q status=%d bytes=%d duration_ms=%d remote=%s request_id=%s",
			r.Method,
			r.URL.Path,
			r.URL.RawQuery,
			rec.status,
			rec.written,
			time.Since(start).Milliseconds(),
			r.RemoteAddr,
			RequestIDFrom(r),
		)
	})
}
