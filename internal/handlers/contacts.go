package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

type ContactHandler struct {
	storeService *services.StoreService
}

func NewContactHandler(storeService *services.StoreService) *ContactHandler {
	return &ContactHandler{storeService: storeService}
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	respondOK(c, "", h.storeService.ListContacts())
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if contact.OutletID != "" {
		outlet, err := h.storeService.GetOutlet(contact.OutletID)
		if err != nil {
			respondError(c, err)
			return
		}
		contact.Outlet = outlet.Name
	}

	created, err := h.storeService.AddContact(contact)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Contact added", created)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.storeService.RemoveContact(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Contact removed", nil)
}
