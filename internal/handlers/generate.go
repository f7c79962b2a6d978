package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

// GenerateHandler runs drafting and discovery with a per-request
// configuration. Credentials in the body are used once and never stored.
type GenerateHandler struct {
	outreachService *services.OutreachService
	campaignService *services.CampaignService
}

func NewGenerateHandler(outreachService *services.OutreachService, campaignService *services.CampaignService) *GenerateHandler {
	return &GenerateHandler{
		outreachService: outreachService,
		campaignService: campaignService,
	}
}

type generateRequest struct {
	AIConfig       models.AIConfig       `json:"aiConfig"`
	ProjectProfile models.ProjectProfile `json:"projectProfile"`
	Contacts       []models.Contact      `json:"contacts"`
	Outlets        []models.Outlet       `json:"outlets"`
	CampaignID     string                `json:"campaignId"`
	StyleGuide     *string               `json:"styleGuide"`
}

type discoverRequest struct {
	AIConfig        models.AIConfig       `json:"aiConfig"`
	ProjectProfile  models.ProjectProfile `json:"projectProfile"`
	TargetNiches    []string              `json:"targetNiches"`
	ExistingOutlets []string              `json:"existingOutlets"`
}

// Generate handles POST /api/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Contacts) == 0 && len(req.Outlets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to draft: pass contacts or outlets"})
		return
	}

	styleGuide := models.DefaultStyleGuide
	if req.StyleGuide != nil {
		styleGuide = *req.StyleGuide
	}

	results := h.campaignService.DraftBatch(c.Request.Context(), req.AIConfig, req.ProjectProfile,
		req.Contacts, req.Outlets, req.CampaignID, styleGuide)

	emails := make([]models.OutreachEmail, 0, len(results))
	failures := make([]services.DraftFailure, 0)
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, services.DraftFailure{Target: r.Label, Error: r.Err.Error()})
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		emails = append(emails, *r.Email)
	}

	if len(emails) == 0 {
		relayError(c, firstErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"emails":   emails,
		"failures": failures,
	})
}

// DiscoverOutlets handles POST /api/outlets
func (h *GenerateHandler) DiscoverOutlets(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outlets, err := h.outreachService.DiscoverOutlets(c.Request.Context(), req.AIConfig, req.ProjectProfile,
		req.TargetNiches, req.ExistingOutlets)
	if err != nil {
		relayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outlets": outlets})
}
