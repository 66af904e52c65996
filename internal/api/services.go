package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/service"
)

// ServicesHandler exposes the named-operation registry over HTTP, the
// way a plugin host dispatches service calls.
type ServicesHandler struct {
	Registry *service.Registry
}

// List handles GET /api/services.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Registry.Services())
}

// Call handles POST /api/services/{name}: the JSON body is passed to
// the named operation as its data bundle.
func (h *ServicesHandler) Call(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Registry.Call(r.Context(), r.PathValue("name"), data)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound),
			errors.Is(err, inventory.ErrNameRequired),
			errors.Is(err, inventory.ErrFetchFailed):
			storeError(w, err)
		case errors.Is(err, service.ErrUnknownService):
			jsonError(w, http.StatusNotFound, err.Error())
		default:
			jsonError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"result": result})
}
