package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmailStatusTransitions(t *testing.T) {
	assert.True(t, EmailStatusDraft.CanTransitionTo(EmailStatusPendingApproval))
	assert.True(t, EmailStatusPendingApproval.CanTransitionTo(EmailStatusApproved))
	assert.True(t, EmailStatusPendingApproval.CanTransitionTo(EmailStatusRejected))
	assert.True(t, EmailStatusApproved.CanTransitionTo(EmailStatusSent))
	assert.True(t, EmailStatusSent.CanTransitionTo(EmailStatusReplied))

	assert.False(t, EmailStatusDraft.CanTransitionTo(EmailStatusSent))
	assert.False(t, EmailStatusApproved.CanTransitionTo(EmailStatusPendingApproval))
	assert.False(t, EmailStatusRejected.CanTransitionTo(EmailStatusApproved))

	assert.True(t, EmailStatusRejected.IsTerminal())
	assert.True(t, EmailStatusReplied.IsTerminal())
	assert.False(t, EmailStatusSent.IsTerminal())
	assert.False(t, EmailStatus("lost").IsValid())
}

func TestCampaignStatusTransitions(t *testing.T) {
	assert.True(t, CampaignStatusDraft.CanTransitionTo(CampaignStatusActive))
	assert.True(t, CampaignStatusActive.CanTransitionTo(CampaignStatusPaused))
	assert.True(t, CampaignStatusPaused.CanTransitionTo(CampaignStatusActive))
	assert.False(t, CampaignStatusDraft.CanTransitionTo(CampaignStatusPaused))
	assert.False(t, CampaignStatusCompleted.CanTransitionTo(CampaignStatusActive))
}

func TestNextRunAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency Frequency
		want      *time.Duration
	}{
		{FrequencyOnce, nil},
		{FrequencyDaily, durationPtr(24 * time.Hour)},
		{FrequencyWeekly, durationPtr(7 * 24 * time.Hour)},
		{FrequencyBiweekly, durationPtr(14 * 24 * time.Hour)},
		{FrequencyContinuous, durationPtr(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			c := Campaign{Frequency: tt.frequency}
			next := c.NextRunAfter(now)
			if tt.want == nil {
				assert.Nil(t, next)
				return
			}
			assert.Equal(t, now.Add(*tt.want), *next)
		})
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", MaskKey("short"))
	assert.Equal(t, "sk-a****wxyz", MaskKey("sk-abcdefghijklmnopqrstuvwxyz"))

	cfg := AIConfig{Provider: ProviderOpenAI, APIKey: "sk-abcdefghijklmnopqrstuvwxyz"}
	masked := cfg.Masked()
	assert.Equal(t, "sk-a****wxyz", masked.APIKey)
	assert.Empty(t, masked.SearchAPIKey)
	assert.Equal(t, "sk-abcdefghijklmnopqrstuvwxyz", cfg.APIKey)
}

func TestEmailDomainSlug(t *testing.T) {
	o := Outlet{Name: "The Verge 2.0"}
	assert.Equal(t, "theverge", o.EmailDomainSlug())
}
