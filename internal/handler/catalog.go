package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flavis-be/internal/catalog"
	"flavis-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ActiveCookies handles GET /cookies/activas
func (h *Handler) ActiveCookies(w http.ResponseWriter, r *http.Request) {
	cookies, err := h.Catalog.ListActive(r.Context())
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, cookies)
}

func (h *Handler) ListCookies(w http.ResponseWriter, r *http.Request) {
	cookies, err := h.Catalog.List(r.Context())
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, cookies)
}

func (h *Handler) CreateCookie(w http.ResponseWriter, r *http.Request) {
	var input catalog.CookieInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.Catalog.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonStatus(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCookie(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid cookie id", http.StatusBadRequest)
		return
	}

	var input catalog.CookieInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.Catalog.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			jsonError(w, "cookie not found", http.StatusNotFound)
		case errors.Is(err, catalog.ErrInvalidInput):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	jsonOK(w, c)
}

// SetCookieActive handles PUT /cookies/{id}/estado
func (h *Handler) SetCookieActive(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid cookie id", http.StatusBadRequest)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			jsonError(w, "cookie not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]bool{"active": req.Active})
}

func (h *Handler) DeleteCookie(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid cookie id", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			jsonError(w, "cookie not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /cookies/upload (multipart). The same ceiling
// applies to product images and payment receipts.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r)
}
