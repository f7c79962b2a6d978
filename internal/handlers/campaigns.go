package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

type CampaignHandler struct {
	storeService    *services.StoreService
	campaignService *services.CampaignService
}

func NewCampaignHandler(storeService *services.StoreService, campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		storeService:    storeService,
		campaignService: campaignService,
	}
}

func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	respondOK(c, "", h.storeService.ListCampaigns())
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	created, err := h.storeService.CreateCampaign(campaign)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Campaign created", created)
}

// GenerateEmails drafts the campaign's emails into the outbox
func (h *CampaignHandler) GenerateEmails(c *gin.Context) {
	result, err := h.campaignService.GenerateEmails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Emails drafted"
	if len(result.Failures) > 0 {
		message = "Some emails could not be drafted"
	}
	respondOK(c, message, result)
}

func (h *CampaignHandler) ToggleCampaign(c *gin.Context) {
	campaign, err := h.storeService.ToggleCampaign(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Campaign "+string(campaign.Status), campaign)
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.storeService.RemoveCampaign(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Campaign removed", nil)
}
