package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/platform/requestctx"
	"github.com/louisbranch/unclutter.space/internal/web/httpx"
)

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(category inventory.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		DisplayName: category.DisplayName(),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	categories, err := h.svc.ListCategories(httpx.RequestContext(r), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	responses := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": responses})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	category, err := h.svc.CreateCategory(httpx.RequestContext(r), userID, req.Name)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *Handler) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.svc.RenameCategory(httpx.RequestContext(r), userID, r.PathValue("id"), req.Name); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	if err := h.svc.DeleteCategory(httpx.RequestContext(r), userID, r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
