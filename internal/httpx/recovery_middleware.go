package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into a 500. When the handler had
// already started its response, the connection is left as is and only the
// panic is logged.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			log.Printf("panic recovered: method=%s path=%s request_id=%s error=%v\n%s",
				r.Method, r.URL.Path, RequestIDFrom(r), v, debug.Stack())

			if rec, ok := w.(*statusRecorder); ok && rec.started {
				return
			}
			JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
