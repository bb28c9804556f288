package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fyyur/internal/logging"
)

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected request id to be propagated, context=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestRequestLoggingKeepsIncomingID(t *testing.T) {
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Fatalf("expected incoming id, got %q", got)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &recordingObserver{}
	router := mux.NewRouter()
	router.Use(Metrics(obs))
	router.HandleFunc("/venues/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/42", nil))

	want := observation{http.MethodGet, "/venues/{id:[0-9]+}", http.StatusNotFound}
	if len(obs.seen) != 1 || obs.seen[0] != want {
		t.Fatalf("unexpected observations: %#v", obs.seen)
	}
}

func TestInstrumentRouterRecordsUnmatched(t *testing.T) {
	obs := &recordingObserver{}
	router := mux.NewRouter()
	router.HandleFunc("/venues", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)
	InstrumentRouter(router, obs)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/venues", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues", nil))

	want := []observation{
		{http.MethodGet, "unmatched", http.StatusNotFound},
		{http.MethodPut, "unmatched", http.StatusMethodNotAllowed},
		{http.MethodGet, "/venues", http.StatusOK},
	}
	if len(obs.seen) != len(want) {
		t.Fatalf("unexpected observations: %#v", obs.seen)
	}
	for i := range want {
		if obs.seen[i] != want[i] {
			t.Fatalf("observation %d: got %#v, want %#v", i, obs.seen[i], want[i])
		}
	}
}

func TestRequestLoggingNamesMatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	log.Logger = zerolog.New(&buf)

	router := mux.NewRouter()
	router.HandleFunc("/venues/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fillmore"))
	}).Methods(http.MethodGet)
	InstrumentRouter(router, &recordingObserver{})
	handler := RequestLogging()(router)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set("X-Request-ID", "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["route"] != "/venues/{id:[0-9]+}" || entry["path"] != "/venues/42" {
		t.Fatalf("unexpected route fields: %v", entry)
	}
	if entry["status"] != float64(http.StatusOK) || entry["bytes"] != float64(len("fillmore")) {
		t.Fatalf("unexpected status fields: %v", entry)
	}
	if entry["request_id"] != "req-42" || entry["level"] != "info" {
		t.Fatalf("unexpected request fields: %v", entry)
	}
}

func TestRequestLoggingWarnsOnUnmatched(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	log.Logger = zerolog.New(&buf)

	router := mux.NewRouter()
	InstrumentRouter(router, &recordingObserver{})
	RequestLogging()(router).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["route"] != "unmatched" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
