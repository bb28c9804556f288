package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RequestObserver receives one observation per finished request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

const unmatchedRoute = "unmatched"

// Metrics reports every request to obs, labelled by the matched route template
// so ids do not explode label cardinality.
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recordStatus(w)
			rec.route = routeTemplate(r)

			next.ServeHTTP(rec, r)

			obs.ObserveRequest(r.Method, rec.route, rec.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if tmpl, err := current.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return unmatchedRoute
}

// InstrumentRouter attaches Metrics to router, including the not-found and
// method-not-allowed handlers that mux runs outside its middleware chain.
func InstrumentRouter(router *mux.Router, obs RequestObserver) {
	observe := Metrics(obs)
	router.Use(mux.MiddlewareFunc(observe))

	notFound := router.NotFoundHandler
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	router.NotFoundHandler = observe(notFound)

	methodNotAllowed := router.MethodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusMethodNotAllowed)
		})
	}
	router.MethodNotAllowedHandler = observe(methodNotAllowed)
}
