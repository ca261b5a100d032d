package handler

import (
	"net/http"

	mw "flavis-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestIDMiddleware)
	r.Use(mw.ClientKeyMiddleware)
	r.Use(mw.LoggingMiddleware)
	r.Use(mw.RateLimitMiddleware)
	r.Use(mw.AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		jsonOK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.Cfg.UploadDir))))

	r.Post("/auth/login", h.Login)

	// Storefront: no auth, keyed by the client identity.
	r.Get("/preventas/activa", h.ActiveCampaign)
	r.Get("/cookies/activas", h.ActiveCookies)
	r.Get("/packs", h.ListPacks)
	r.Post("/pedidos", h.SubmitOrder)
	r.Get("/pedidos/bloqueo", h.GuardStatus)
	r.Route("/pedidos/borrador", func(r chi.Router) {
		r.Get("/", h.GetDraft)
		r.Put("/", h.SaveDraft)
		r.Delete("/", h.ClearDraft)
	})
	r.Get("/clientes/buscar", h.LookupCustomer)
	r.Get("/pagos/instrucciones", h.PaymentInstructions)

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)

		r.Get("/preventas", h.ListCampaigns)
		r.Post("/preventas", h.CreateCampaign)
		r.Put("/preventas/{id}", h.UpdateCampaign)

		r.Get("/cookies", h.ListCookies)
		r.Post("/cookies", h.CreateCookie)
		r.Post("/cookies/upload", h.UploadImage)
		r.Put("/cookies/{id}", h.UpdateCookie)
		r.Put("/cookies/{id}/estado", h.SetCookieActive)
		r.Delete("/cookies/{id}", h.DeleteCookie)

		r.Post("/packs", h.CreatePack)
		r.Put("/packs/{id}", h.UpdatePack)
		r.Delete("/packs/{id}", h.DeletePack)

		r.Get("/pedidos", h.ListOrders)
		r.Get("/pedidos/preventa/{id}", h.ListOrdersByCampaign)
		r.Patch("/pedidos/{id}/visto", h.MarkOrderSeen)
		r.Patch("/pedidos/{id}/anular", h.VoidOrder)

		r.Get("/clientes", h.ListCustomers)
		r.Put("/clientes/{celular}/notas", h.UpdateCustomerNotes)
	})

	return r
}
