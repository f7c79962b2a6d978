package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/repositories"
)

// OutletFilter selects outlets for listing
type OutletFilter string

const (
	OutletFilterAll        OutletFilter = "all"
	OutletFilterPicked     OutletFilter = "picked"
	OutletFilterDiscovered OutletFilter = "discovered"
)

// StoreService is the entity store. Every mutator reads a copy of the
// workspace, edits it and writes it back whole; the first error aborts the
// write so state is never half-updated.
type StoreService struct {
	repo  repositories.StateRepository
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewStoreService(repo repositories.StateRepository) *StoreService {
	return &StoreService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *StoreService) update(fn func(state *models.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.repo.Get()
	if err := fn(state); err != nil {
		return err
	}
	return s.repo.Set(state)
}

// State returns a copy of the whole workspace
func (s *StoreService) State() *models.AppState {
	return s.repo.Get()
}

// Subscribe registers fn for every committed change
func (s *StoreService) Subscribe(fn func(*models.AppState)) func() {
	return s.repo.Subscribe(fn)
}

// Setup

func (s *StoreService) SetAIConfig(cfg models.AIConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.update(func(state *models.AppState) error {
		state.AIConfig = &cfg
		state.SetupComplete = state.ProjectProfile != nil
		return nil
	})
}

func (s *StoreService) SetProjectProfile(profile models.ProjectProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.Achievements = compact(profile.Achievements)
	return s.update(func(state *models.AppState) error {
		state.ProjectProfile = &profile
		state.SetupComplete = state.AIConfig != nil
		return nil
	})
}

func (s *StoreService) IsSetupComplete() bool {
	return s.repo.Get().SetupComplete
}

// RequireSetup returns the configuration every AI operation needs
func (s *StoreService) RequireSetup() (models.AIConfig, models.ProjectProfile, error) {
	state := s.repo.Get()
	if state.AIConfig == nil {
		return models.AIConfig{}, models.ProjectProfile{}, &ConfigurationError{Field: "aiConfig", Message: "AI provider is not configured"}
	}
	if state.ProjectProfile == nil {
		return models.AIConfig{}, models.ProjectProfile{}, &ConfigurationError{Field: "projectProfile", Message: "Project profile is not configured"}
	}
	return *state.AIConfig, *state.ProjectProfile, nil
}

func (s *StoreService) StyleGuide() string {
	return s.repo.Get().StyleGuide
}

func (s *StoreService) SetStyleGuide(guide string) error {
	return s.update(func(state *models.AppState) error {
		state.StyleGuide = guide
		return nil
	})
}

func (s *StoreService) ResetStyleGuide() error {
	return s.SetStyleGuide(models.DefaultStyleGuide)
}

// Outlets

func (s *StoreService) ListOutlets(filter OutletFilter) []models.Outlet {
	outlets := s.repo.Get().Outlets
	if filter == "" || filter == OutletFilterAll {
		return outlets
	}
	out := make([]models.Outlet, 0, len(outlets))
	for _, o := range outlets {
		if (filter == OutletFilterPicked && o.IsUserPicked) || (filter == OutletFilterDiscovered && o.IsDiscovered) {
			out = append(out, o)
		}
	}
	return out
}

func (s *StoreService) GetOutlet(id string) (models.Outlet, error) {
	for _, o := range s.repo.Get().Outlets {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Outlet{}, notFound("outlet", id)
}

// OutletNames lists every stored outlet name in insertion order
func (s *StoreService) OutletNames() []string {
	outlets := s.repo.Get().Outlets
	names := make([]string, 0, len(outlets))
	for _, o := range outlets {
		names = append(names, o.Name)
	}
	return names
}

// AddOutlet stores a manually added outlet, which is picked immediately
func (s *StoreService) AddOutlet(outlet models.Outlet) (models.Outlet, error) {
	if outlet.Type == "" {
		outlet.Type = models.OutletTypePublication
	}
	if outlet.Priority == "" {
		outlet.Priority = models.PriorityMedium
	}
	if err := outlet.Validate(); err != nil {
		return models.Outlet{}, err
	}
	outlet.ID = s.newID()
	outlet.IsUserPicked = true
	outlet.IsDiscovered = false

	err := s.update(func(state *models.AppState) error {
		state.Outlets = append(state.Outlets, outlet)
		return nil
	})
	return outlet, err
}

// AddDiscoveredOutlets batch-inserts discovery results as unpicked
func (s *StoreService) AddDiscoveredOutlets(drafts []models.Outlet) ([]models.Outlet, error) {
	added := make([]models.Outlet, 0, len(drafts))
	for _, o := range drafts {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		o.ID = s.newID()
		o.IsUserPicked = false
		o.IsDiscovered = true
		added = append(added, o)
	}
	if len(added) == 0 {
		return added, nil
	}

	err := s.update(func(state *models.AppState) error {
		state.Outlets = append(state.Outlets, added...)
		return nil
	})
	return added, err
}

// ConfirmOutlet turns a discovered outlet into a user pick
func (s *StoreService) ConfirmOutlet(id string) (models.Outlet, error) {
	var confirmed models.Outlet
	err := s.update(func(state *models.AppState) error {
		for i := range state.Outlets {
			if state.Outlets[i].ID == id {
				state.Outlets[i].IsUserPicked = true
				confirmed = state.Outlets[i]
				return nil
			}
		}
		return notFound("outlet", id)
	})
	return confirmed, err
}

// RemoveOutlet deletes the outlet only; its contacts are kept
func (s *StoreService) RemoveOutlet(id string) error {
	return s.update(func(state *models.AppState) error {
		for i, o := range state.Outlets {
			if o.ID == id {
				state.Outlets = append(state.Outlets[:i], state.Outlets[i+1:]...)
				return nil
			}
		}
		return notFound("outlet", id)
	})
}

// Contacts

func (s *StoreService) ListContacts() []models.Contact {
	return s.repo.Get().Contacts
}

func (s *StoreService) GetContact(id string) (models.Contact, error) {
	for _, c := range s.repo.Get().Contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, notFound("contact", id)
}

func (s *StoreService) AddContact(contact models.Contact) (models.Contact, error) {
	added, err := s.AddContacts([]models.Contact{contact})
	if err != nil {
		return models.Contact{}, err
	}
	return added[0], nil
}

func (s *StoreService) AddContacts(contacts []models.Contact) ([]models.Contact, error) {
	added := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		c.ID = s.newID()
		added = append(added, c)
	}
	if len(added) == 0 {
		return added, nil
	}

	err := s.update(func(state *models.AppState) error {
		state.Contacts = append(state.Contacts, added...)
		return nil
	})
	return added, err
}

func (s *StoreService) RemoveContact(id string) error {
	return s.update(func(state *models.AppState) error {
		for i, c := range state.Contacts {
			if c.ID == id {
				state.Contacts = append(state.Contacts[:i], state.Contacts[i+1:]...)
				return nil
			}
		}
		return notFound("contact", id)
	})
}

// Campaigns

// CreateCampaign stores a new draft campaign. Targets must be confirmed outlets.
func (s *StoreService) CreateCampaign(campaign models.Campaign) (models.Campaign, error) {
	if err := campaign.Validate(); err != nil {
		return models.Campaign{}, err
	}
	campaign.ID = s.newID()
	campaign.Status = models.CampaignStatusDraft
	campaign.CreatedAt = s.now()
	campaign.NextRunAt = nil
	campaign.TargetNiches = compact(campaign.TargetNiches)
	if campaign.TargetOutlets == nil {
		campaign.TargetOutlets = []string{}
	}

	err := s.update(func(state *models.AppState) error {
		for _, id := range campaign.TargetOutlets {
			if !isPickedOutlet(state.Outlets, id) {
				return &models.ValidationError{Field: "targetOutlets", Message: "Campaigns can only target confirmed outlets: " + id}
			}
		}
		state.Campaigns = append(state.Campaigns, campaign)
		return nil
	})
	return campaign, err
}

func isPickedOutlet(outlets []models.Outlet, id string) bool {
	for _, o := range outlets {
		if o.ID == id {
			return o.IsUserPicked
		}
	}
	return false
}

func (s *StoreService) GetCampaign(id string) (models.Campaign, error) {
	for _, c := range s.repo.Get().Campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Campaign{}, notFound("campaign", id)
}

// ListCampaigns returns campaigns with counters derived from the outbox
func (s *StoreService) ListCampaigns() []models.CampaignSummary {
	state := s.repo.Get()
	out := make([]models.CampaignSummary, 0, len(state.Campaigns))
	for _, c := range state.Campaigns {
		out = append(out, summarize(c, state.Emails))
	}
	return out
}

func (s *StoreService) CampaignSummary(id string) (models.CampaignSummary, error) {
	state := s.repo.Get()
	for _, c := range state.Campaigns {
		if c.ID == id {
			return summarize(c, state.Emails), nil
		}
	}
	return models.CampaignSummary{}, notFound("campaign", id)
}

func summarize(c models.Campaign, emails []models.OutreachEmail) models.CampaignSummary {
	summary := models.CampaignSummary{Campaign: c}
	for _, e := range emails {
		if e.CampaignID != c.ID {
			continue
		}
		switch e.Status {
		case models.EmailStatusSent, models.EmailStatusReplied:
			summary.TotalSent++
		case models.EmailStatusApproved:
			summary.TotalApproved++
		case models.EmailStatusPendingApproval:
			summary.TotalPending++
		}
	}
	return summary
}

// UpdateCampaignStatus applies a user-driven campaign transition
func (s *StoreService) UpdateCampaignStatus(id string, to models.CampaignStatus) (models.Campaign, error) {
	var updated models.Campaign
	err := s.update(func(state *models.AppState) error {
		for i := range state.Campaigns {
			c := &state.Campaigns[i]
			if c.ID != id {
				continue
			}
			if c.Status == to {
				updated = *c
				return nil
			}
			if !c.Status.CanTransitionTo(to) {
				return &TransitionError{Entity: "campaign", From: string(c.Status), To: string(to)}
			}
			c.Status = to
			if to == models.CampaignStatusActive {
				c.NextRunAt = c.NextRunAfter(s.now())
			} else {
				c.NextRunAt = nil
			}
			updated = *c
			return nil
		}
		return notFound("campaign", id)
	})
	return updated, err
}

// ToggleCampaign flips active and paused
func (s *StoreService) ToggleCampaign(id string) (models.Campaign, error) {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return models.Campaign{}, err
	}
	switch campaign.Status {
	case models.CampaignStatusActive:
		return s.UpdateCampaignStatus(id, models.CampaignStatusPaused)
	case models.CampaignStatusPaused:
		return s.UpdateCampaignStatus(id, models.CampaignStatusActive)
	default:
		return models.Campaign{}, &TransitionError{Entity: "campaign", From: string(campaign.Status), To: "toggled"}
	}
}

// RemoveCampaign keeps the campaign's emails; they fall back to their own fields
func (s *StoreService) RemoveCampaign(id string) error {
	return s.update(func(state *models.AppState) error {
		for i, c := range state.Campaigns {
			if c.ID == id {
				state.Campaigns = append(state.Campaigns[:i], state.Campaigns[i+1:]...)
				return nil
			}
		}
		return notFound("campaign", id)
	})
}

// Emails

// AddEmails stores drafted emails, assigning ids and creation times. An
// unset status becomes draft.
func (s *StoreService) AddEmails(drafts []models.OutreachEmail) ([]models.OutreachEmail, error) {
	added, err := s.prepareEmails(drafts)
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return added, nil
	}

	err = s.update(func(state *models.AppState) error {
		state.Emails = append(state.Emails, added...)
		return nil
	})
	return added, err
}

// StoreGeneratedEmails appends drafts for campaignID and activates the
// campaign in one write. When the campaign no longer exists nothing is stored.
func (s *StoreService) StoreGeneratedEmails(campaignID string, drafts []models.OutreachEmail) ([]models.OutreachEmail, error) {
	added, err := s.prepareEmails(drafts)
	if err != nil {
		return nil, err
	}

	err = s.update(func(state *models.AppState) error {
		for i := range state.Campaigns {
			c := &state.Campaigns[i]
			if c.ID != campaignID {
				continue
			}
			if c.Status != models.CampaignStatusActive && c.Status.CanTransitionTo(models.CampaignStatusActive) {
				c.Status = models.CampaignStatusActive
				c.NextRunAt = c.NextRunAfter(s.now())
			}
			state.Emails = append(state.Emails, added...)
			return nil
		}
		return notFound("campaign", campaignID)
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *StoreService) prepareEmails(drafts []models.OutreachEmail) ([]models.OutreachEmail, error) {
	now := s.now()
	prepared := make([]models.OutreachEmail, 0, len(drafts))
	for _, e := range drafts {
		if e.Status == "" {
			e.Status = models.EmailStatusDraft
		}
		if !e.Status.IsValid() {
			return nil, &models.ValidationError{Field: "status", Message: "Unknown email status " + string(e.Status)}
		}
		e.ID = s.newID()
		e.CreatedAt = now
		prepared = append(prepared, e)
	}
	return prepared, nil
}

func (s *StoreService) AddEmail(email models.OutreachEmail) (models.OutreachEmail, error) {
	added, err := s.AddEmails([]models.OutreachEmail{email})
	if err != nil {
		return models.OutreachEmail{}, err
	}
	return added[0], nil
}

// ListEmails filters by status and type; empty or "all" matches everything
func (s *StoreService) ListEmails(status models.EmailStatus, emailType models.EmailType) []models.OutreachEmail {
	emails := s.repo.Get().Emails
	out := make([]models.OutreachEmail, 0, len(emails))
	for _, e := range emails {
		if status != "" && status != "all" && e.Status != status {
			continue
		}
		if emailType != "" && emailType != "all" && e.Type != emailType {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *StoreService) GetEmail(id string) (models.OutreachEmail, error) {
	for _, e := range s.repo.Get().Emails {
		if e.ID == id {
			return e, nil
		}
	}
	return models.OutreachEmail{}, notFound("email", id)
}

// ApproveEmail moves a pending email to approved and stamps approvedAt.
// Approving an approved email changes nothing.
func (s *StoreService) ApproveEmail(id string) (models.OutreachEmail, error) {
	return s.SetEmailStatus(id, models.EmailStatusApproved)
}

func (s *StoreService) RejectEmail(id string) (models.OutreachEmail, error) {
	return s.SetEmailStatus(id, models.EmailStatusRejected)
}

// BulkApproveEmails approves every pending email in ids and returns the ids
// that changed. Unknown ids and illegal transitions are skipped.
func (s *StoreService) BulkApproveEmails(ids []string) ([]string, error) {
	return s.bulkTransition(ids, models.EmailStatusApproved)
}

func (s *StoreService) BulkRejectEmails(ids []string) ([]string, error) {
	return s.bulkTransition(ids, models.EmailStatusRejected)
}

func (s *StoreService) bulkTransition(ids []string, to models.EmailStatus) ([]string, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	changed := []string{}
	err := s.update(func(state *models.AppState) error {
		now := s.now()
		for i := range state.Emails {
			e := &state.Emails[i]
			if !wanted[e.ID] {
				continue
			}
			if ok, _ := transitionEmail(e, to, now); ok {
				changed = append(changed, e.ID)
			}
		}
		return nil
	})
	return changed, err
}

// SetEmailStatus is the generic forward transition, used for sent and
// replied marking as well as approval.
func (s *StoreService) SetEmailStatus(id string, to models.EmailStatus) (models.OutreachEmail, error) {
	if !to.IsValid() {
		return models.OutreachEmail{}, &models.ValidationError{Field: "status", Message: "Unknown email status " + string(to)}
	}

	var updated models.OutreachEmail
	err := s.update(func(state *models.AppState) error {
		for i := range state.Emails {
			e := &state.Emails[i]
			if e.ID != id {
				continue
			}
			if _, err := transitionEmail(e, to, s.now()); err != nil {
				return err
			}
			updated = *e
			return nil
		}
		return notFound("email", id)
	})
	return updated, err
}

// transitionEmail applies to when legal. Staying in the same status is a
// no-op that keeps the original timestamps.
func transitionEmail(e *models.OutreachEmail, to models.EmailStatus, now time.Time) (bool, error) {
	if e.Status == to {
		return false, nil
	}
	if !e.Status.CanTransitionTo(to) {
		return false, &TransitionError{Entity: "email", From: string(e.Status), To: string(to)}
	}
	e.Status = to
	switch to {
	case models.EmailStatusApproved:
		e.ApprovedAt = &now
	case models.EmailStatusSent:
		e.SentAt = &now
	}
	return true, nil
}

func (s *StoreService) SetEmailNotes(id, notes string) (models.OutreachEmail, error) {
	var updated models.OutreachEmail
	err := s.update(func(state *models.AppState) error {
		for i := range state.Emails {
			if state.Emails[i].ID == id {
				state.Emails[i].Notes = notes
				updated = state.Emails[i]
				return nil
			}
		}
		return notFound("email", id)
	})
	return updated, err
}

func (s *StoreService) RemoveEmail(id string) error {
	return s.update(func(state *models.AppState) error {
		for i, e := range state.Emails {
			if e.ID == id {
				state.Emails = append(state.Emails[:i], state.Emails[i+1:]...)
				return nil
			}
		}
		return notFound("email", id)
	})
}

// DashboardStats derives the overview counters
func (s *StoreService) DashboardStats() models.DashboardStats {
	state := s.repo.Get()
	stats := models.DashboardStats{TotalCampaigns: len(state.Campaigns)}

	for _, c := range state.Campaigns {
		if c.Status == models.CampaignStatusActive {
			stats.ActiveCampaigns++
		}
	}
	for _, o := range state.Outlets {
		if o.IsUserPicked {
			stats.OutletsTargeted++
		}
	}

	reached := make(map[string]bool)
	for _, e := range state.Emails {
		switch e.Status {
		case models.EmailStatusPendingApproval:
			stats.EmailsPending++
		case models.EmailStatusApproved:
			stats.EmailsApproved++
		case models.EmailStatusSent:
			stats.EmailsSent++
		case models.EmailStatusReplied:
			stats.EmailsSent++
			stats.EmailsReplied++
		}
		if e.Status == models.EmailStatusSent || e.Status == models.EmailStatusReplied {
			key := e.ContactID
			if key == "" {
				key = strings.ToLower(e.ContactEmail)
			}
			reached[key] = true
		}
	}
	stats.ContactsReached = len(reached)
	return stats
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
