package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes mounts the API under /api. Everything below /api/notes and
// /api/auth/me requires a bearer token.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	a := r.PathPrefix("/api").Subrouter()
	a.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	a.HandleFunc("/test", h.Test).Methods(http.MethodGet)
	a.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	a.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	me := a.Path("/auth/me").Subrouter()
	me.Use(h.authMiddleware)
	me.Methods(http.MethodGet).HandlerFunc(h.Me)

	n := a.PathPrefix("/notes").Subrouter()
	n.Use(h.authMiddleware)
	n.HandleFunc("", h.CreateNote).Methods(http.MethodPost)
	n.HandleFunc("", h.ListNotes).Methods(http.MethodGet)
	n.HandleFunc("/export", h.ExportNotes).Methods(http.MethodPost)
	n.HandleFunc("/{id}", h.GetNote).Methods(http.MethodGet)
	n.HandleFunc("/{id}", h.UpdateNote).Methods(http.MethodPut)
	n.HandleFunc("/{id}", h.DeleteNote).Methods(http.MethodDelete)

	return r
}
