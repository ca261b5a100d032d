package handler

import (
	"flavis-be/internal/campaign"
	"flavis-be/internal/catalog"
	"flavis-be/internal/config"
	"flavis-be/internal/customer"
	"flavis-be/internal/draft"
	"flavis-be/internal/order"
	"flavis-be/internal/packages"
	"flavis-be/internal/upload"
	"flavis-be/internal/user"
)

// Handler carries the wired services for the HTTP layer. Route methods
// hang off it; Routes() builds the router.
type Handler struct {
	Cfg       *config.Config
	Users     user.Service
	Campaigns campaign.Service
	Catalog   catalog.Service
	Packs     packages.Service
	Customers customer.Service
	Orders    order.Service
	Drafts    *draft.Store
	Uploads   upload.Service
}

func New(
	cfg *config.Config,
	users user.Service,
	campaigns campaign.Service,
	catalogSvc catalog.Service,
	packs packages.Service,
	customers customer.Service,
	orders order.Service,
	drafts *draft.Store,
	uploads upload.Service,
) *Handler {
	return &Handler{
		Cfg:       cfg,
		Users:     users,
		Campaigns: campaigns,
		Catalog:   catalogSvc,
		Packs:     packs,
		Customers: customers,
		Orders:    orders,
		Drafts:    drafts,
		Uploads:   uploads,
	}
}
