package models

import "time"

// EmailType distinguishes personal pitches from editorial-inbox pitches
type EmailType string

const (
	EmailTypeIndividual  EmailType = "individual"
	EmailTypePublication EmailType = "publication"
)

// EmailStatus represents the status of an outreach email
type EmailStatus string

const (
	EmailStatusDraft           EmailStatus = "draft"
	EmailStatusPendingApproval EmailStatus = "pending_approval"
	EmailStatusApproved        EmailStatus = "approved"
	EmailStatusRejected        EmailStatus = "rejected"
	EmailStatusSent            EmailStatus = "sent"
	EmailStatusReplied         EmailStatus = "replied"
)

// Forward-only: draft -> pending_approval -> {approved, rejected};
// approved -> sent -> replied.
var emailTransitions = map[EmailStatus][]EmailStatus{
	EmailStatusDraft:           {EmailStatusPendingApproval},
	EmailStatusPendingApproval: {EmailStatusApproved, EmailStatusRejected},
	EmailStatusApproved:        {EmailStatusSent},
	EmailStatusSent:            {EmailStatusReplied},
}

func (s EmailStatus) IsValid() bool {
	switch s {
	case EmailStatusDraft, EmailStatusPendingApproval, EmailStatusApproved,
		EmailStatusRejected, EmailStatusSent, EmailStatusReplied:
		return true
	}
	return false
}

// IsTerminal is true for rejected and replied
func (s EmailStatus) IsTerminal() bool {
	return len(emailTransitions[s]) == 0
}

// CanTransitionTo reports whether next is a legal successor of s
func (s EmailStatus) CanTransitionTo(next EmailStatus) bool {
	for _, allowed := range emailTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OutreachEmail is a drafted pitch moving through the approval workflow.
// Contact and outlet fields are denormalized so the email still renders
// after its contact is removed.
type OutreachEmail struct {
	ID           string `json:"id" yaml:"id"`
	CampaignID   string `json:"campaignId" yaml:"campaignId"`
	ContactID    string `json:"contactId,omitempty" yaml:"contactId,omitempty"`
	ContactName  string `json:"contactName" yaml:"contactName"`
	ContactEmail string `json:"contactEmail" yaml:"contactEmail"`
	// PlaceholderEmail marks a synthetic tips@<outlet>.example.com address.
	PlaceholderEmail bool        `json:"placeholderEmail,omitempty" yaml:"placeholderEmail,omitempty"`
	OutletName       string      `json:"outletName" yaml:"outletName"`
	Type             EmailType   `json:"type" yaml:"type"`
	Subject          string      `json:"subject" yaml:"subject"`
	Body             string      `json:"body" yaml:"body"`
	Status           EmailStatus `json:"status" yaml:"status"`
	CreatedAt        time.Time   `json:"createdAt" yaml:"createdAt"`
	ApprovedAt       *time.Time  `json:"approvedAt,omitempty" yaml:"approvedAt,omitempty"`
	SentAt           *time.Time  `json:"sentAt,omitempty" yaml:"sentAt,omitempty"`
	Notes            string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// RecipientLabel renders the recipient from the denormalized fields
func (e *OutreachEmail) RecipientLabel() string {
	name := e.ContactName
	if name == "" {
		name = "Unknown"
	}
	if e.ContactEmail == "" {
		return name
	}
	return name + " <" + e.ContactEmail + ">"
}
