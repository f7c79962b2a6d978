package models

import "strings"

// OutletType is the kind of media an outlet publishes
type OutletType string

const (
	OutletTypePublication OutletType = "publication"
	OutletTypeBlog        OutletType = "blog"
	OutletTypePodcast     OutletType = "podcast"
	OutletTypeNewsletter  OutletType = "newsletter"
	OutletTypeYouTube     OutletType = "youtube"
)

// IsValid reports whether t is a known outlet type
func (t OutletType) IsValid() bool {
	switch t {
	case OutletTypePublication, OutletTypeBlog, OutletTypePodcast, OutletTypeNewsletter, OutletTypeYouTube:
		return true
	}
	return false
}

// Priority ranks how promising an outlet is
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Outlet is a media target. Discovered outlets start unpicked and become
// part of the user's targets only after ConfirmOutlet.
type Outlet struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Type           OutletType `json:"type" yaml:"type"`
	Niche          string     `json:"niche" yaml:"niche"`
	URL            string     `json:"url,omitempty" yaml:"url,omitempty"`
	AudienceSize   string     `json:"audienceSize,omitempty" yaml:"audienceSize,omitempty"`
	RelevanceScore *int       `json:"relevanceScore,omitempty" yaml:"relevanceScore,omitempty"`
	Priority       Priority   `json:"priority,omitempty" yaml:"priority,omitempty"`
	IsUserPicked   bool       `json:"isUserPicked" yaml:"isUserPicked"`
	IsDiscovered   bool       `json:"isDiscovered" yaml:"isDiscovered"`
}

func (o *Outlet) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return &ValidationError{Field: "name", Message: "Outlet name is required"}
	}
	if !o.Type.IsValid() {
		return &ValidationError{Field: "type", Message: "Outlet type must be publication, blog, podcast, newsletter or youtube"}
	}
	if o.RelevanceScore != nil && (*o.RelevanceScore < 0 || *o.RelevanceScore > 100) {
		return &ValidationError{Field: "relevanceScore", Message: "Relevance score must be between 0 and 100"}
	}
	return nil
}

// EmailDomainSlug is the outlet name lowercased with every non-letter
// removed; it names the placeholder domain of publication pitches.
func (o *Outlet) EmailDomainSlug() string {
	var sb strings.Builder
	for _, r := range strings.ToLower(o.Name) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
