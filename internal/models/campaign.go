package models

import (
	"strings"
	"time"
)

// Frequency is a cadence label. Nothing executes it.
type Frequency string

const (
	FrequencyOnce       Frequency = "once"
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyContinuous Frequency = "continuous"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyContinuous:
		return true
	}
	return false
}

// CampaignStatus represents the status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign groups target outlets and niches for batch drafting
type Campaign struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Frequency     Frequency      `json:"frequency" yaml:"frequency"`
	Status        CampaignStatus `json:"status" yaml:"status"`
	TargetOutlets []string       `json:"targetOutlets" yaml:"targetOutlets"`
	TargetNiches  []string       `json:"targetNiches" yaml:"targetNiches"`
	CreatedAt     time.Time      `json:"createdAt" yaml:"createdAt"`
	NextRunAt     *time.Time     `json:"nextRunAt,omitempty" yaml:"nextRunAt,omitempty"`
}

func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "Campaign name is required"}
	}
	if !c.Frequency.IsValid() {
		return &ValidationError{Field: "frequency", Message: "Frequency must be once, daily, weekly, biweekly or continuous"}
	}
	return nil
}

// NextRunAfter returns the informational next run for the cadence, or nil
// for one-time campaigns.
func (c *Campaign) NextRunAfter(t time.Time) *time.Time {
	var next time.Time
	switch c.Frequency {
	case FrequencyDaily:
		next = t.Add(24 * time.Hour)
	case FrequencyWeekly:
		next = t.Add(7 * 24 * time.Hour)
	case FrequencyBiweekly:
		next = t.Add(14 * 24 * time.Hour)
	case FrequencyContinuous:
		next = t.Add(time.Hour)
	default:
		return nil
	}
	return &next
}

// TargetsOutlet reports whether outletID is among the campaign targets
func (c *Campaign) TargetsOutlet(outletID string) bool {
	for _, id := range c.TargetOutlets {
		if id == outletID {
			return true
		}
	}
	return false
}

// CampaignSummary is a campaign with counters derived from the outbox
type CampaignSummary struct {
	Campaign
	TotalSent     int `json:"totalSent"`
	TotalApproved int `json:"totalApproved"`
	TotalPending  int `json:"totalPending"`
}

// draft -> active by generation; active <-> paused by toggle. Nothing
// leads to completed yet.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:  {CampaignStatusActive},
	CampaignStatusActive: {CampaignStatusPaused},
	CampaignStatusPaused: {CampaignStatusActive},
}

// CanTransitionTo reports whether next is a legal successor of s
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
