// Package httpapi exposes the contact-exchange operations over HTTP:
// profile registration, QR rendering, scan resolution and the read-only
// admin queries.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/qrcontact/internal/logging"
)

// NewRouter wires all routes and middleware around the handler.
func NewRouter(h *Handler, logger logging.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RequestLogMiddleware(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/api/profiles", h.CreateProfile).Methods("POST")
	r.HandleFunc("/api/profiles/{id}/qr", h.ProfileQR).Methods("GET")

	r.HandleFunc("/api/resolve", h.ResolveGet).Methods("GET")
	r.HandleFunc("/api/resolve", h.ResolvePost).Methods("POST")

	r.HandleFunc("/api/admin/search", h.AdminSearch).Methods("GET")
	r.HandleFunc("/api/admin/profiles", h.AdminListProfiles).Methods("GET")
	r.HandleFunc("/api/admin/stats", h.AdminStats).Methods("GET")

	return r
}
