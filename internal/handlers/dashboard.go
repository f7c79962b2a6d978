package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/services"
)

type DashboardHandler struct {
	storeService *services.StoreService
}

func NewDashboardHandler(storeService *services.StoreService) *DashboardHandler {
	return &DashboardHandler{storeService: storeService}
}

// Dashboard returns the derived overview counters and the latest campaigns
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	campaigns := h.storeService.ListCampaigns()
	if len(campaigns) > 5 {
		campaigns = campaigns[len(campaigns)-5:]
	}

	respondOK(c, "", gin.H{
		"stats":         h.storeService.DashboardStats(),
		"setupComplete": h.storeService.IsSetupComplete(),
		"campaigns":     campaigns,
	})
}
