package models

// CurrentStateVersion is the layout version of the persisted blob
const CurrentStateVersion = 1

// DefaultStyleGuide is injected into drafting prompts until the user edits it
const DefaultStyleGuide = `Be concise and direct. No corporate jargon. Write like a real person, not a PR agency.
Lead with value: why should they care about this story?
Keep emails under 200 words. Respect their time.
Warm but professional tone. No exclamation marks. No "I hope this email finds you well".
When referencing their work, be specific and genuine. Don't be generic or sycophantic.
End with a clear, low-pressure ask (e.g. "would you be open to a quick look?" not "please let me know at your earliest convenience").
No buzzwords. No "revolutionary", "game-changing", "excited to share". Just say what it does.`

// AppState is the whole workspace, read and written as one blob
type AppState struct {
	Version        int             `json:"version"`
	AIConfig       *AIConfig       `json:"aiConfig"`
	ProjectProfile *ProjectProfile `json:"projectProfile"`
	StyleGuide     string          `json:"styleGuide"`
	SetupComplete  bool            `json:"setupComplete"`
	Outlets        []Outlet        `json:"outlets"`
	Contacts       []Contact       `json:"contacts"`
	Emails         []OutreachEmail `json:"emails"`
	Campaigns      []Campaign      `json:"campaigns"`
}

// NewAppState returns an empty workspace at the current version
func NewAppState() *AppState {
	return &AppState{
		Version:    CurrentStateVersion,
		StyleGuide: DefaultStyleGuide,
		Outlets:    []Outlet{},
		Contacts:   []Contact{},
		Emails:     []OutreachEmail{},
		Campaigns:  []Campaign{},
	}
}

// Clone returns a deep copy; mutators work on clones so a failed update
// never leaves a half-written state behind.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := *s
	if s.AIConfig != nil {
		cfg := *s.AIConfig
		out.AIConfig = &cfg
	}
	if s.ProjectProfile != nil {
		p := *s.ProjectProfile
		p.Achievements = append([]string(nil), s.ProjectProfile.Achievements...)
		out.ProjectProfile = &p
	}

	out.Outlets = make([]Outlet, len(s.Outlets))
	for i, o := range s.Outlets {
		if o.RelevanceScore != nil {
			score := *o.RelevanceScore
			o.RelevanceScore = &score
		}
		out.Outlets[i] = o
	}

	out.Contacts = append([]Contact{}, s.Contacts...)

	out.Emails = make([]OutreachEmail, len(s.Emails))
	for i, e := range s.Emails {
		if e.ApprovedAt != nil {
			t := *e.ApprovedAt
			e.ApprovedAt = &t
		}
		if e.SentAt != nil {
			t := *e.SentAt
			e.SentAt = &t
		}
		out.Emails[i] = e
	}

	out.Campaigns = make([]Campaign, len(s.Campaigns))
	for i, c := range s.Campaigns {
		c.TargetOutlets = append([]string{}, c.TargetOutlets...)
		c.TargetNiches = append([]string{}, c.TargetNiches...)
		if c.NextRunAt != nil {
			t := *c.NextRunAt
			c.NextRunAt = &t
		}
		out.Campaigns[i] = c
	}
	return &out
}

// Normalize fills nil collections so JSON clients always see arrays
func (s *AppState) Normalize() {
	if s.Version == 0 {
		s.Version = CurrentStateVersion
	}
	if s.Outlets == nil {
		s.Outlets = []Outlet{}
	}
	if s.Contacts == nil {
		s.Contacts = []Contact{}
	}
	if s.Emails == nil {
		s.Emails = []OutreachEmail{}
	}
	if s.Campaigns == nil {
		s.Campaigns = []Campaign{}
	}
}
