package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flavis-be/internal/packages"
	"flavis-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ListPacks handles GET /packs. Anonymous callers only see active packs;
// the admin dashboard passes ?todos=1 for the full list.
func (h *Handler) ListPacks(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("todos") == "" ||
		utils.GetUserRoleFromContext(r.Context()) != "ADMIN"

	packs, err := h.Packs.List(r.Context(), onlyActive)
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, packs)
}

func (h *Handler) CreatePack(w http.ResponseWriter, r *http.Request) {
	var input packages.PackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := h.Packs.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, packages.ErrInvalidInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonStatus(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePack(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid pack id", http.StatusBadRequest)
		return
	}

	var input packages.PackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := h.Packs.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, packages.ErrPackNotFound):
			jsonError(w, "pack not found", http.StatusNotFound)
		case errors.Is(err, packages.ErrInvalidInput):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	jsonOK(w, p)
}

func (h *Handler) DeletePack(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid pack id", http.StatusBadRequest)
		return
	}

	if err := h.Packs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, packages.ErrPackNotFound) {
			jsonError(w, "pack not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
