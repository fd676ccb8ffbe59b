// Package web exposes the inventory tracker as a JSON HTTP API.
package web

import (
	"net/http"

	"github.com/louisbranch/unclutter.space/internal/service"
	"github.com/louisbranch/unclutter.space/internal/session"
	"github.com/louisbranch/unclutter.space/internal/web/httpx"
)

// Handler routes HTTP requests to the inventory service.
type Handler struct {
	svc      *service.Service
	sessions *session.Service
}

// New creates a Handler backed by the given service and credential signer.
func New(svc *service.Service, sessions *session.Service) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

// Routes builds the full HTTP handler with middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("POST /create-temp-user", h.handleCreateTempUser)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /items", h.handleListItems)
	protected.HandleFunc("POST /items", h.handleCreateItem)
	protected.HandleFunc("PATCH /items/{id}", h.handleUpdateItem)
	protected.HandleFunc("DELETE /items/{id}", h.handleDeleteItem)
	protected.HandleFunc("POST /items/{id}/archive", h.handleArchiveItem)
	protected.HandleFunc("POST /items/import", h.handleImportItems)
	protected.HandleFunc("GET /categories", h.handleListCategories)
	protected.HandleFunc("POST /categories", h.handleCreateCategory)
	protected.HandleFunc("PATCH /categories/{id}", h.handleRenameCategory)
	protected.HandleFunc("DELETE /categories/{id}", h.handleDeleteCategory)

	mux.Handle("/", httpx.Chain(protected, h.RequireSession()))

	return httpx.Chain(mux,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		Trace("unclutter.space/web"),
	)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
