package middleware

import "net/http"

// statusRecorder remembers what the handler chain sent back. Nested
// middleware share one recorder so the outer log line sees the route the
// router matched further in.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int
	route   string
	written bool
}

func recordStatus(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK, route: unmatchedRoute}
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.written {
		return
	}
	rec.status = code
	rec.written = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.written {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}
