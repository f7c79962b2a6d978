package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OutboxWriter renders the filtered outbox. ExportService implements it.
type OutboxWriter interface {
	WriteOutbox(w io.Writer, status models.EmailStatus, emailType models.EmailType) error
}

type EmailHandler struct {
	storeService  *services.StoreService
	exportService OutboxWriter
}

func NewEmailHandler(storeService *services.StoreService, exportService OutboxWriter) *EmailHandler {
	return &EmailHandler{
		storeService:  storeService,
		exportService: exportService,
	}
}

type bulkRequest struct {
	IDs []string `json:"ids"`
}

// ListEmails returns the outbox filtered by ?status= and ?type=
func (h *EmailHandler) ListEmails(c *gin.Context) {
	status := models.EmailStatus(c.Query("status"))
	emailType := models.EmailType(c.Query("type"))
	respondOK(c, "", h.storeService.ListEmails(status, emailType))
}

func (h *EmailHandler) ApproveEmail(c *gin.Context) {
	email, err := h.storeService.ApproveEmail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Email approved", email)
}

func (h *EmailHandler) RejectEmail(c *gin.Context) {
	email, err := h.storeService.RejectEmail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Email rejected", email)
}

func (h *EmailHandler) BulkApprove(c *gin.Context) {
	h.bulk(c, h.storeService.BulkApproveEmails, "approved")
}

func (h *EmailHandler) BulkReject(c *gin.Context) {
	h.bulk(c, h.storeService.BulkRejectEmails, "rejected")
}

func (h *EmailHandler) bulk(c *gin.Context, apply func([]string) ([]string, error), verb string) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	changed, err := apply(req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, fmt.Sprintf("%d emails %s", len(changed), verb), gin.H{"ids": changed})
}

// UpdateStatus marks an email sent or replied, or applies any other legal move
func (h *EmailHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.EmailStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	email, err := h.storeService.SetEmailStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Email status updated", email)
}

func (h *EmailHandler) UpdateNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	email, err := h.storeService.SetEmailNotes(c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Notes saved", email)
}

func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	if err := h.storeService.RemoveEmail(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Email removed", nil)
}

// Export streams the filtered outbox as an XLSX download
func (h *EmailHandler) Export(c *gin.Context) {
	status := models.EmailStatus(c.Query("status"))
	emailType := models.EmailType(c.Query("type"))

	var buf bytes.Buffer
	if err := h.exportService.WriteOutbox(&buf, status, emailType); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("outbox-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
