package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

type SetupHandler struct {
	storeService *services.StoreService
}

func NewSetupHandler(storeService *services.StoreService) *SetupHandler {
	return &SetupHandler{storeService: storeService}
}

// State returns the whole workspace with the credentials masked
func (h *SetupHandler) State(c *gin.Context) {
	state := h.storeService.State()
	if state.AIConfig != nil {
		masked := state.AIConfig.Masked()
		state.AIConfig = &masked
	}
	respondOK(c, "", state)
}

func (h *SetupHandler) GetConfig(c *gin.Context) {
	state := h.storeService.State()
	if state.AIConfig == nil {
		respondOK(c, "AI provider is not configured", nil)
		return
	}
	respondOK(c, "", state.AIConfig.Masked())
}

func (h *SetupHandler) UpdateConfig(c *gin.Context) {
	var cfg models.AIConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.storeService.SetAIConfig(cfg); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "AI provider saved", cfg.Masked())
}

func (h *SetupHandler) GetProfile(c *gin.Context) {
	state := h.storeService.State()
	if state.ProjectProfile == nil {
		respondOK(c, "Project profile is not configured", nil)
		return
	}
	respondOK(c, "", state.ProjectProfile)
}

func (h *SetupHandler) UpdateProfile(c *gin.Context) {
	var profile models.ProjectProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.storeService.SetProjectProfile(profile); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Project profile saved", h.storeService.State().ProjectProfile)
}

func (h *SetupHandler) GetStyleGuide(c *gin.Context) {
	respondOK(c, "", gin.H{"styleGuide": h.storeService.StyleGuide()})
}

func (h *SetupHandler) UpdateStyleGuide(c *gin.Context) {
	var req struct {
		StyleGuide string `json:"styleGuide"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.storeService.SetStyleGuide(req.StyleGuide); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Style guide saved", gin.H{"styleGuide": req.StyleGuide})
}

func (h *SetupHandler) ResetStyleGuide(c *gin.Context) {
	if err := h.storeService.ResetStyleGuide(); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Style guide reset", gin.H{"styleGuide": models.DefaultStyleGuide})
}
