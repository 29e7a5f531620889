package http

import (
	nethttp "net/http"

	"season-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Everything under /seasons/
// is dispatched by the handler itself because sport and season ids live in
// the path.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/sports", handler.Sports)
	mux.HandleFunc("/transitions", handler.Transitions)
	mux.HandleFunc("/analysis", handler.Analysis)
	mux.Handle("/seasons/", handler)
	return mux
}
