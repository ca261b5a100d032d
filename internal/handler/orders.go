package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"flavis-be/internal/draft"
	"flavis-be/internal/order"
	"flavis-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// SubmitOrder handles POST /pedidos, the submission flow entry point.
// Lockout answers 429 with the remaining cooldown, field validation 422,
// stock and closed-campaign conflicts 409.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.Orders.Submit(r.Context(), clientKey, &d)
	if err != nil {
		var locked *order.LockedError
		var invalid *order.ValidationError
		var stock *order.StockError

		switch {
		case errors.As(err, &locked):
			jsonStatus(w, http.StatusTooManyRequests, map[string]interface{}{
				"error":               "submission locked",
				"retry_after_seconds": int(math.Ceil(locked.Remaining.Seconds())),
				"lock_level":          locked.Level,
			})
		case errors.As(err, &invalid):
			body := map[string]interface{}{
				"error":  "invalid fields",
				"fields": invalid.Fields,
				"locked": invalid.Locked,
			}
			if invalid.Locked {
				body["retry_after_seconds"] = int(math.Ceil(invalid.Remaining.Seconds()))
			}
			jsonStatus(w, http.StatusUnprocessableEntity, body)
		case errors.As(err, &stock):
			jsonStatus(w, http.StatusConflict, map[string]interface{}{
				"error":     "insufficient stock",
				"requested": stock.Requested,
				"available": stock.Available,
			})
		case errors.Is(err, order.ErrCampaignClosed):
			jsonError(w, "campaign is closed", http.StatusConflict)
		default:
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	jsonStatus(w, http.StatusCreated, o)
}

// GuardStatus handles GET /pedidos/bloqueo so a returning browser can
// restore its countdown before attempting anything.
func (h *Handler) GuardStatus(w http.ResponseWriter, r *http.Request) {
	clientKey := utils.ClientKeyFromContext(r.Context())
	if clientKey == "" {
		jsonError(w, "missing client identity", http.StatusBadRequest)
		return
	}

	st, err := h.Orders.GuardStatus(r.Context(), clientKey)
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]interface{}{
		"locked":              st.Locked,
		"retry_after_seconds": int(math.Ceil(st.Remaining.Seconds())),
		"lock_level":          st.LockLevel,
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, orders)
}

func (h *Handler) ListOrdersByCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	orders, err := h.Orders.ListByCampaign(r.Context(), id)
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, orders)
}

// MarkOrderSeen handles PATCH /pedidos/{id}/visto
func (h *Handler) MarkOrderSeen(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := h.Orders.MarkSeen(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			jsonError(w, "order not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]bool{"seen": true})
}

// VoidOrder handles PATCH /pedidos/{id}/anular. Voiding returns the
// order's units to the campaign stock.
func (h *Handler) VoidOrder(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := h.Orders.Void(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			jsonError(w, "order not found", http.StatusNotFound)
		case errors.Is(err, order.ErrAlreadyVoided):
			jsonError(w, "order already voided", http.StatusConflict)
		default:
			jsonError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	jsonOK(w, map[string]string{"status": "VOIDED"})
}
