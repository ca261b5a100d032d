package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flavis-be/internal/customer"

	"github.com/go-chi/chi/v5"
)

// LookupCustomer handles GET /clientes/buscar?telefono= for form prefill.
// A miss is a plain 404; the storefront treats it as a new customer.
func (h *Handler) LookupCustomer(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("telefono")
	if phone == "" {
		jsonError(w, "telefono required", http.StatusBadRequest)
		return
	}

	c, err := h.Customers.Lookup(r.Context(), phone)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			jsonError(w, "customer not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, c)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, customers)
}

// UpdateCustomerNotes handles PUT /clientes/{celular}/notas
func (h *Handler) UpdateCustomerNotes(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "celular")

	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.Customers.UpdateNotes(r.Context(), phone, req.Notes); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			jsonError(w, "customer not found", http.StatusNotFound)
			return
		}
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]string{"notes": req.Notes})
}
