package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

type OutletHandler struct {
	storeService    *services.StoreService
	outreachService *services.OutreachService
}

func NewOutletHandler(storeService *services.StoreService, outreachService *services.OutreachService) *OutletHandler {
	return &OutletHandler{
		storeService:    storeService,
		outreachService: outreachService,
	}
}

func (h *OutletHandler) ListOutlets(c *gin.Context) {
	filter := services.OutletFilter(c.DefaultQuery("filter", string(services.OutletFilterAll)))
	switch filter {
	case services.OutletFilterAll, services.OutletFilterPicked, services.OutletFilterDiscovered:
	default:
		badRequest(c, "filter must be all, picked or discovered")
		return
	}

	respondOK(c, "", h.storeService.ListOutlets(filter))
}

func (h *OutletHandler) CreateOutlet(c *gin.Context) {
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	created, err := h.storeService.AddOutlet(outlet)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Outlet added", created)
}

func (h *OutletHandler) ConfirmOutlet(c *gin.Context) {
	outlet, err := h.storeService.ConfirmOutlet(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Outlet confirmed", outlet)
}

func (h *OutletHandler) DeleteOutlet(c *gin.Context) {
	if err := h.storeService.RemoveOutlet(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Outlet removed", nil)
}

// DiscoverOutlets asks the model for new outlets and stores them unpicked
func (h *OutletHandler) DiscoverOutlets(c *gin.Context) {
	var req struct {
		TargetNiches []string `json:"targetNiches"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	cfg, profile, err := h.storeService.RequireSetup()
	if err != nil {
		respondError(c, err)
		return
	}

	drafts, err := h.outreachService.DiscoverOutlets(c.Request.Context(), cfg, profile, req.TargetNiches, h.storeService.OutletNames())
	if err != nil {
		respondError(c, err)
		return
	}

	added, err := h.storeService.AddDiscoveredOutlets(drafts)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Outlets discovered", added)
}

// FindContacts searches for journalists at an outlet and stores them
func (h *OutletHandler) FindContacts(c *gin.Context) {
	outlet, err := h.storeService.GetOutlet(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	cfg, profile, err := h.storeService.RequireSetup()
	if err != nil {
		respondError(c, err)
		return
	}

	found, err := h.outreachService.FindContacts(c.Request.Context(), cfg, profile, outlet)
	if err != nil {
		respondError(c, err)
		return
	}

	added, err := h.storeService.AddContacts(found)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Contacts found", added)
}
