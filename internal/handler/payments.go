package handler

import (
	"errors"
	"fmt"
	"net/http"

	"flavis-be/internal/campaign"
	"flavis-be/internal/payment"
)

// PaymentInstructions handles GET /pagos/instrucciones?metodo=. Steps come
// back with the active campaign's total placeholders already resolved
// where possible; the storefront fills the rest.
func (h *Handler) PaymentInstructions(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("metodo")
	if method == "" {
		method = payment.MethodYape
	}

	steps := payment.GetInstructions(method)

	vars := payment.InstructionVars{}
	snap, err := h.Campaigns.GetActive(r.Context())
	if err == nil || errors.Is(err, campaign.ErrNoActive) {
		if snap.Campaign != nil && snap.Campaign.QRURL != "" {
			vars["qr_url"] = snap.Campaign.QRURL
		}
	}
	if amount := r.URL.Query().Get("monto"); amount != "" {
		vars["amount"] = fmt.Sprintf("S/ %s", amount)
	}

	jsonOK(w, map[string]interface{}{
		"method": method,
		"steps":  payment.InjectVariables(steps, vars),
	})
}
