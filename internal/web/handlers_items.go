package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/platform/requestctx"
	"github.com/louisbranch/unclutter.space/internal/service"
	"github.com/louisbranch/unclutter.space/internal/storage"
	"github.com/louisbranch/unclutter.space/internal/web/httpx"
)

const defaultPageSize = 10

type itemResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Pieces     int        `json:"pieces"`
	StartDate  time.Time  `json:"startDate"`
	Deadline   time.Time  `json:"deadline"`
	CategoryID string     `json:"categoryId,omitempty"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toItemResponse(item inventory.Item) itemResponse {
	return itemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Pieces:     item.Pieces,
		StartDate:  item.StartDate,
		Deadline:   item.Deadline,
		CategoryID: item.CategoryID,
		ArchivedAt: item.ArchivedAt,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type itemListResponse struct {
	Items      []itemResponse `json:"items"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"page"`
}

func toItemListResponse(listing service.ItemListing) itemListResponse {
	items := make([]itemResponse, 0, len(listing.Items))
	for _, item := range listing.Items {
		items = append(items, toItemResponse(item))
	}
	return itemListResponse{
		Items:      items,
		Total:      listing.Total,
		TotalPages: listing.TotalPages,
		Page:       listing.Page,
	}
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	filter := storage.ItemFilter{
		Search:     query.Get("search"),
		CategoryID: query.Get("categoryId"),
		Archived:   query.Get("archived") == "true",
	}

	listing, err := h.svc.ListItems(httpx.RequestContext(r), userID, filter, page, defaultPageSize)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemListResponse(listing))
}

type createItemRequest struct {
	Name           string `json:"name"`
	Pieces         int    `json:"pieces"`
	DeadlineMonths int    `json:"deadlineMonths"`
	CategoryID     string `json:"categoryId"`
}

func (r createItemRequest) toInput() inventory.CreateItemInput {
	return inventory.CreateItemInput{
		Name:           r.Name,
		Pieces:         r.Pieces,
		DeadlineMonths: r.DeadlineMonths,
		CategoryID:     r.CategoryID,
	}
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.svc.CreateItem(httpx.RequestContext(r), userID, req.toInput())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toItemResponse(item))
}

type updateItemRequest struct {
	Name       *string    `json:"name"`
	Pieces     *int       `json:"pieces"`
	Deadline   *time.Time `json:"deadline"`
	CategoryID *string    `json:"categoryId"`
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	itemID := r.PathValue("id")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	patch := inventory.ItemPatch{
		Name:       req.Name,
		Pieces:     req.Pieces,
		Deadline:   req.Deadline,
		CategoryID: req.CategoryID,
	}
	if patch.Empty() {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		return
	}

	item, err := h.svc.UpdateItem(httpx.RequestContext(r), userID, itemID, patch)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	if err := h.svc.DeleteItem(httpx.RequestContext(r), userID, r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleArchiveItem(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	if err := h.svc.ArchiveItem(httpx.RequestContext(r), userID, r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importItemsRequest struct {
	Items []createItemRequest `json:"items"`
}

func (h *Handler) handleImportItems(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())

	var req importItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	inputs := make([]inventory.CreateItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.toInput())
	}

	items, err := h.svc.ImportItems(httpx.RequestContext(r), userID, inputs)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"items": responses})
}
