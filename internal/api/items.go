package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/model"
)

// ItemsHandler handles item CRUD and photo endpoints.
type ItemsHandler struct {
	Store *inventory.Store
}

type moveAreaRequest struct {
	AreaID *string `json:"area_id"`
}

type setZoneRequest struct {
	ZoneEntityID *string `json:"zone_entity_id"`
}

type photoURLRequest struct {
	ImageURL string `json:"image_url"`
	Filename string `json:"filename"`
}

// storeError maps store errors to HTTP responses.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, inventory.ErrNameRequired):
		jsonError(w, http.StatusBadRequest, "name required")
	case errors.Is(err, inventory.ErrFetchFailed):
		jsonError(w, http.StatusBadGateway, "photo fetch failed")
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Store.Items()
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := h.Store.Item(r.PathValue("id"))
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft inventory.ItemDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.AddItem(r.Context(), draft)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PATCH /api/items/{id}. The body is a partial update:
// only the supplied fields change, unrecognized keys are ignored.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch inventory.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.UpdateItem(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Store.DeleteItem(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// MoveArea handles PUT /api/items/{id}/area.
func (h *ItemsHandler) MoveArea(w http.ResponseWriter, r *http.Request) {
	var req moveAreaRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.MoveItemArea(r.Context(), r.PathValue("id"), req.AreaID)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// SetZone handles PUT /api/items/{id}/zone.
func (h *ItemsHandler) SetZone(w http.ResponseWriter, r *http.Request) {
	var req setZoneRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.SetItemZone(r.Context(), r.PathValue("id"), req.ZoneEntityID)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadPhoto handles POST /api/items/{id}/photo (multipart).
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	// Limit to 20 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read photo")
		return
	}

	item, err := h.Store.AddItemPhotoFromBytes(r.Context(), r.PathValue("id"), content, inventory.PhotoOptions{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// PhotoFromURL handles POST /api/items/{id}/photo-url.
func (h *ItemsHandler) PhotoFromURL(w http.ResponseWriter, r *http.Request) {
	var req photoURLRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageURL == "" {
		jsonError(w, http.StatusBadRequest, "image_url required")
		return
	}

	item, err := h.Store.AddItemPhotoFromURL(r.Context(), r.PathValue("id"), req.ImageURL, req.Filename)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// ListCategories handles GET /api/categories. Categories are modeled
// and persisted but have no write operations in this surface.
func (h *ItemsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.Store.Categories()
	if cats == nil {
		cats = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, cats)
}
