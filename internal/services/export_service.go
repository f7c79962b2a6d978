package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prnow/prnow/internal/models"
)

const outboxSheet = "Outbox"

var outboxHeader = []interface{}{
	"Status", "Type", "Recipient", "Email", "Placeholder", "Outlet",
	"Campaign", "Subject", "Body", "Created", "Approved", "Sent", "Notes",
}

// ExportService renders the outbox as a spreadsheet
type ExportService struct {
	store *StoreService
}

func NewExportService(store *StoreService) *ExportService {
	return &ExportService{store: store}
}

// WriteOutbox writes the filtered outbox as an XLSX workbook to w
func (s *ExportService) WriteOutbox(w io.Writer, status models.EmailStatus, emailType models.EmailType) error {
	emails := s.store.ListEmails(status, emailType)

	campaignNames := make(map[string]string)
	for _, c := range s.store.State().Campaigns {
		campaignNames[c.ID] = c.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outboxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetSheetRow(outboxSheet, "A1", &outboxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(outboxHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(outboxSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range emails {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			string(e.Status),
			string(e.Type),
			e.ContactName,
			e.ContactEmail,
			e.PlaceholderEmail,
			e.OutletName,
			campaignNames[e.CampaignID],
			e.Subject,
			e.Body,
			formatTime(&e.CreatedAt),
			formatTime(e.ApprovedAt),
			formatTime(e.SentAt),
			e.Notes,
		}
		if err := f.SetSheetRow(outboxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
