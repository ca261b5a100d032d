package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flavis-be/internal/campaign"
	"flavis-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ActiveCampaign handles GET /preventas/activa. The snapshot is computed
// server-side at fetch time; the storefront renders it as-is.
func (h *Handler) ActiveCampaign(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Campaigns.GetActive(r.Context())
	if err != nil && !errors.Is(err, campaign.ErrNoActive) {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, snap)
}

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Campaigns.List(r.Context())
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, campaigns)
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.Campaigns.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, campaign.ErrInvalidInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonStatus(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var input campaign.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.Campaigns.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrNotFound):
			jsonError(w, "campaign not found", http.StatusNotFound)
		case errors.Is(err, campaign.ErrInvalidInput):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	jsonOK(w, c)
}
