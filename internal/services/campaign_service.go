package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/internal/workers"
	"github.com/prnow/prnow/pkg/logger"
)

// Per-run caps on generated drafts
const (
	MaxContactsPerRun = 5
	MaxOutletsPerRun  = 3
)

// Drafter drafts single emails. OutreachService implements it.
type Drafter interface {
	DraftIndividualEmail(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, contact models.Contact, campaignID, styleGuide string) (*models.OutreachEmail, error)
	DraftPublicationEmail(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, outlet models.Outlet, campaignID, styleGuide string) (*models.OutreachEmail, error)
}

// DraftFailure names a draft that could not be produced
type DraftFailure struct {
	Target string `json:"target"`
	Error  string `json:"error"`
}

// GenerationResult is what a campaign run produced
type GenerationResult struct {
	Emails   []models.OutreachEmail `json:"emails"`
	Failures []DraftFailure         `json:"failures"`
}

// CampaignService drafts batches of emails for campaigns
type CampaignService struct {
	store   *StoreService
	drafter Drafter
	pool    *workers.DraftPool
}

func NewCampaignService(store *StoreService, drafter Drafter, pool *workers.DraftPool) *CampaignService {
	return &CampaignService{
		store:   store,
		drafter: drafter,
		pool:    pool,
	}
}

// DraftBatch drafts one individual email per contact and one publication
// email per outlet. Failures are reported per item; the batch never aborts.
func (s *CampaignService) DraftBatch(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, contacts []models.Contact, outlets []models.Outlet, campaignID, styleGuide string) []workers.Result {
	tasks := make([]workers.Task, 0, len(contacts)+len(outlets))
	for _, c := range contacts {
		tasks = append(tasks, workers.Task{
			Label: c.Name + " (" + c.Outlet + ")",
			Run: func(ctx context.Context) (*models.OutreachEmail, error) {
				return s.drafter.DraftIndividualEmail(ctx, cfg, profile, c, campaignID, styleGuide)
			},
		})
	}
	for _, o := range outlets {
		tasks = append(tasks, workers.Task{
			Label: o.Name,
			Run: func(ctx context.Context) (*models.OutreachEmail, error) {
				return s.drafter.DraftPublicationEmail(ctx, cfg, profile, o, campaignID, styleGuide)
			},
		})
	}
	return s.pool.Run(ctx, tasks)
}

// GenerateEmails drafts emails for a campaign's target outlets: individual
// pitches to their contacts and a publication pitch per outlet, capped per
// run. Drafted emails are stored as pending approval and the campaign is
// activated in the same write, when at least one draft succeeded.
func (s *CampaignService) GenerateEmails(ctx context.Context, campaignID string) (*GenerationResult, error) {
	cfg, profile, err := s.store.RequireSetup()
	if err != nil {
		return nil, err
	}
	campaign, err := s.store.GetCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	if len(campaign.TargetOutlets) == 0 {
		return nil, &models.ValidationError{Field: "targetOutlets", Message: "Campaign has no target outlets"}
	}

	contacts, outlets := s.targets(campaign)
	if len(contacts) == 0 && len(outlets) == 0 {
		return nil, &models.ValidationError{Field: "targetOutlets", Message: "Campaign targets no confirmed outlets"}
	}

	results := s.DraftBatch(ctx, cfg, profile, contacts, outlets, campaign.ID, s.store.StyleGuide())

	drafted := make([]models.OutreachEmail, 0, len(results))
	failures := make([]DraftFailure, 0)
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, DraftFailure{Target: r.Label, Error: r.Err.Error()})
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		drafted = append(drafted, *r.Email)
	}

	if len(drafted) == 0 {
		return nil, fmt.Errorf("no emails drafted for campaign %s: %w", campaign.Name, firstErr)
	}

	stored, err := s.store.StoreGeneratedEmails(campaign.ID, drafted)
	if err != nil {
		return nil, fmt.Errorf("failed to store drafted emails: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"campaign": campaign.Name,
		"drafted":  len(stored),
		"failed":   len(failures),
	}).Info("Campaign emails generated")

	return &GenerationResult{Emails: stored, Failures: failures}, nil
}

// targets resolves the capped contact and outlet lists for a run. Only
// confirmed outlets are used.
func (s *CampaignService) targets(campaign models.Campaign) ([]models.Contact, []models.Outlet) {
	state := s.store.State()

	outlets := make([]models.Outlet, 0, MaxOutletsPerRun)
	for _, o := range state.Outlets {
		if o.IsUserPicked && campaign.TargetsOutlet(o.ID) && len(outlets) < MaxOutletsPerRun {
			outlets = append(outlets, o)
		}
	}

	contacts := make([]models.Contact, 0, MaxContactsPerRun)
	for _, c := range state.Contacts {
		if len(contacts) == MaxContactsPerRun {
			break
		}
		if c.OutletID != "" && campaign.TargetsOutlet(c.OutletID) && isPickedOutlet(state.Outlets, c.OutletID) {
			contacts = append(contacts, c)
		}
	}
	return contacts, outlets
}
