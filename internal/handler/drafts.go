package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flavis-be/internal/draft"
	"flavis-be/internal/utils"
)

// GetDraft handles GET /pedidos/borrador: the client's in-progress form,
// if any, so a reload can restore it.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	clientKey := utils.ClientKeyFromContext(r.Context())
	if clientKey == "" {
		jsonError(w, "missing client identity", http.StatusBadRequest)
		return
	}

	d, err := h.Drafts.Load(r.Context(), clientKey)
	if err != nil {
		if errors.Is(err, draft.ErrNotFound) {
			jsonError(w, "no draft", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, d)
}

// SaveDraft handles PUT /pedidos/borrador. The draft is stored as sent;
// validation only happens at submission.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	clientKey := utils.ClientKeyFromContext(r.Context())
	if clientKey == "" {
		jsonError(w, "missing client identity", http.StatusBadRequest)
		return
	}

	var d draft.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.Drafts.Save(r.Context(), clientKey, &d); err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	clientKey := utils.ClientKeyFromContext(r.Context())
	if clientKey == "" {
		jsonError(w, "missing client identity", http.StatusBadRequest)
		return
	}

	if err := h.Drafts.Clear(r.Context(), clientKey); err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
