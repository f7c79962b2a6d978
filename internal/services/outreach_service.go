package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/pkg/logger"
)

// Searcher runs a web search and returns prompt-ready text
type Searcher interface {
	Search(ctx context.Context, apiKey, query string) (string, error)
}

// OutreachService builds prompts from domain entities, calls the gateway and
// shapes the parsed output into entity drafts. It never touches the store:
// callers pass the drafts to a StoreService mutator.
type OutreachService struct {
	completer ai.Completer
	searcher  Searcher
}

func NewOutreachService(completer ai.Completer, searcher Searcher) *OutreachService {
	return &OutreachService{
		completer: completer,
		searcher:  searcher,
	}
}

// Raw model output shapes.

type outletDraft struct {
	Name           ai.FlexString `json:"name"`
	Type           ai.FlexString `json:"type"`
	Niche          ai.FlexString `json:"niche"`
	URL            ai.FlexString `json:"url"`
	AudienceSize   ai.FlexString `json:"audienceSize"`
	RelevanceScore ai.FlexInt    `json:"relevanceScore"`
	Priority       ai.FlexString `json:"priority"`
}

type contactDraft struct {
	Name     ai.FlexString `json:"name"`
	Email    ai.FlexString `json:"email"`
	Role     ai.FlexString `json:"role"`
	Beat     ai.FlexString `json:"beat"`
	LinkedIn ai.FlexString `json:"linkedIn"`
}

type emailDraft struct {
	Subject      ai.FlexString `json:"subject"`
	Body         ai.FlexString `json:"body"`
	ContactName  ai.FlexString `json:"contactName"`
	ContactEmail ai.FlexString `json:"contactEmail"`
}

// DiscoverOutlets proposes new outlets. Results start unpicked and
// discovered; names already in existingOutletNames are dropped.
func (s *OutreachService) DiscoverOutlets(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, targetNiches, existingOutletNames []string) ([]models.Outlet, error) {
	if err := checkReady(cfg, &profile); err != nil {
		return nil, err
	}

	system, user := ai.BuildDiscoverPrompt(profile, targetNiches, existingOutletNames)
	text, err := s.completer.Complete(ctx, cfg, system, user, ai.Options{})
	if err != nil {
		return nil, err
	}

	drafts := ai.ParseOrDefault(text, []outletDraft{})

	seen := make(map[string]bool, len(existingOutletNames)+len(drafts))
	for _, name := range existingOutletNames {
		seen[normalizeName(name)] = true
	}

	defaultNiche := profile.Category
	if len(targetNiches) > 0 {
		defaultNiche = targetNiches[0]
	}

	outlets := make([]models.Outlet, 0, len(drafts))
	for _, d := range drafts {
		outlet := shapeOutlet(d, defaultNiche)
		key := normalizeName(outlet.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		outlets = append(outlets, outlet)
	}

	logger.WithFields(logrus.Fields{
		"provider":  cfg.Provider,
		"proposed":  len(drafts),
		"new":       len(outlets),
		"niches":    len(targetNiches),
		"excluding": len(existingOutletNames),
	}).Info("Outlet discovery finished")

	return outlets, nil
}

func shapeOutlet(d outletDraft, defaultNiche string) models.Outlet {
	outlet := models.Outlet{
		Name:         firstNonEmpty(cleanText(d.Name.String()), "Unknown"),
		Type:         models.OutletType(strings.ToLower(d.Type.String())),
		Niche:        firstNonEmpty(d.Niche.String(), defaultNiche),
		URL:          d.URL.String(),
		AudienceSize: d.AudienceSize.String(),
		Priority:     models.Priority(strings.ToLower(d.Priority.String())),
		IsUserPicked: false,
		IsDiscovered: true,
	}
	if !outlet.Type.IsValid() {
		outlet.Type = models.OutletTypePublication
	}
	switch outlet.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		outlet.Priority = models.PriorityMedium
	}
	if d.RelevanceScore.Set {
		score := min(max(d.RelevanceScore.Value, 0), 100)
		outlet.RelevanceScore = &score
	}
	return outlet
}

// FindContacts looks up journalists at outlet. Only contacts backed by
// search results are wanted; an email that cannot be verified is left empty
// rather than guessed. Providers without a search tool need a search API key.
func (s *OutreachService) FindContacts(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, outlet models.Outlet) ([]models.Contact, error) {
	if err := checkReady(cfg, &profile); err != nil {
		return nil, err
	}

	var (
		text          string
		searchContext string
		err           error
	)

	switch {
	case s.completer.SupportsSearch(cfg.Provider):
		system, user := ai.BuildContactsWebSearchPrompt(profile, outlet)
		text, err = s.completer.Complete(ctx, cfg, system, user, ai.Options{WantSearch: true})
	case cfg.SearchAPIKey != "" && s.searcher != nil:
		searchContext, err = s.gatherSearchContext(ctx, cfg.SearchAPIKey, profile, outlet)
		if err != nil {
			return nil, err
		}
		system, user := ai.BuildContactsFromResultsPrompt(profile, outlet, searchContext)
		text, err = s.completer.Complete(ctx, cfg, system, user, ai.Options{})
	default:
		return nil, &CapabilityError{
			Operation: "findContacts",
			Provider:  string(cfg.Provider),
			Message: fmt.Sprintf("%s cannot search the web. Switch to Anthropic or add a Serper search API key in setup to find real contacts.",
				cfg.Provider.DisplayName()),
		}
	}
	if err != nil {
		return nil, err
	}

	drafts := ai.ParseOrDefault(text, []contactDraft{})
	contacts := make([]models.Contact, 0, len(drafts))
	for _, d := range drafts {
		contacts = append(contacts, shapeContact(d, outlet, searchContext))
	}

	logger.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"outlet":   outlet.Name,
		"contacts": len(contacts),
	}).Info("Contact search finished")

	return contacts, nil
}

func (s *OutreachService) gatherSearchContext(ctx context.Context, apiKey string, profile models.ProjectProfile, outlet models.Outlet) (string, error) {
	var sb strings.Builder
	for _, q := range ai.ContactSearchQueries(profile, outlet) {
		results, err := s.searcher.Search(ctx, apiKey, q)
		if err != nil {
			return "", fmt.Errorf("search %q: %w", q, err)
		}
		sb.WriteString(results)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// shapeContact pins the contact to outlet. With a non-empty searchContext
// an email that does not appear in it is treated as invented.
func shapeContact(d contactDraft, outlet models.Outlet, searchContext string) models.Contact {
	email := strings.TrimSpace(d.Email.String())
	if !strings.Contains(email, "@") {
		email = ""
	}
	if email != "" && searchContext != "" && !strings.Contains(strings.ToLower(searchContext), strings.ToLower(email)) {
		email = ""
	}

	return models.Contact{
		Name:     firstNonEmpty(cleanText(d.Name.String()), "Unknown"),
		Email:    email,
		Role:     firstNonEmpty(cleanText(d.Role.String()), "Journalist"),
		Outlet:   outlet.Name,
		OutletID: outlet.ID,
		Beat:     cleanText(d.Beat.String()),
		LinkedIn: d.LinkedIn.String(),
	}
}

// DraftIndividualEmail drafts a personal pitch to contact. Unusable model
// output is replaced by a templated email built from the same inputs.
func (s *OutreachService) DraftIndividualEmail(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, contact models.Contact, campaignID, styleGuide string) (*models.OutreachEmail, error) {
	if err := checkReady(cfg, &profile); err != nil {
		return nil, err
	}

	system, user := ai.BuildIndividualEmailPrompt(profile, contact, styleGuide)
	text, err := s.completer.Complete(ctx, cfg, system, user, ai.Options{})
	if err != nil {
		return nil, err
	}

	draft, ok := ai.Parse[emailDraft](text)
	if !ok {
		logger.WithField("contact", contact.Name).Warn("Unparseable pitch draft, using template")
	}

	return &models.OutreachEmail{
		CampaignID:   campaignID,
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		OutletName:   contact.Outlet,
		Type:         models.EmailTypeIndividual,
		Subject:      firstNonEmpty(cleanText(draft.Subject.String()), individualFallbackSubject(profile)),
		Body:         firstNonEmpty(cleanText(draft.Body.String()), individualFallbackBody(profile, contact)),
		Status:       models.EmailStatusPendingApproval,
	}, nil
}

// DraftPublicationEmail drafts a pitch for the outlet's editorial inbox.
// The address is a synthetic tips@<outlet>.example.com placeholder and is
// flagged as such.
func (s *OutreachService) DraftPublicationEmail(ctx context.Context, cfg models.AIConfig, profile models.ProjectProfile, outlet models.Outlet, campaignID, styleGuide string) (*models.OutreachEmail, error) {
	if err := checkReady(cfg, &profile); err != nil {
		return nil, err
	}

	domain := PlaceholderDomain(outlet)
	system, user := ai.BuildPublicationEmailPrompt(profile, outlet, domain, styleGuide)
	text, err := s.completer.Complete(ctx, cfg, system, user, ai.Options{})
	if err != nil {
		return nil, err
	}

	draft, ok := ai.Parse[emailDraft](text)
	if !ok {
		logger.WithField("outlet", outlet.Name).Warn("Unparseable publication draft, using template")
	}

	address := strings.ToLower(strings.TrimSpace(draft.ContactEmail.String()))
	if !strings.HasSuffix(address, "@"+domain) || strings.HasPrefix(address, "@") {
		address = "tips@" + domain
	}

	return &models.OutreachEmail{
		CampaignID:       campaignID,
		ContactName:      firstNonEmpty(cleanText(draft.ContactName.String()), "Editorial Team"),
		ContactEmail:     address,
		PlaceholderEmail: true,
		OutletName:       outlet.Name,
		Type:             models.EmailTypePublication,
		Subject:          firstNonEmpty(cleanText(draft.Subject.String()), publicationFallbackSubject(profile)),
		Body:             firstNonEmpty(cleanText(draft.Body.String()), publicationFallbackBody(profile)),
		Status:           models.EmailStatusPendingApproval,
	}, nil
}

// PlaceholderDomain is <outlet name, letters only>.example.com
func PlaceholderDomain(outlet models.Outlet) string {
	slug := outlet.EmailDomainSlug()
	if slug == "" {
		slug = "outlet"
	}
	return slug + ".example.com"
}

func individualFallbackSubject(profile models.ProjectProfile) string {
	if profile.Tagline == "" {
		return "Covering " + profile.Name
	}
	return fmt.Sprintf("Covering %s: %s", profile.Name, profile.Tagline)
}

func individualFallbackBody(profile models.ProjectProfile, contact models.Contact) string {
	return fmt.Sprintf("Hi %s,\n\nI'm reaching out about %s. %s\n\nWould love to discuss further.\n\nBest regards",
		firstNonEmpty(contact.Name, "there"), profile.Name, profile.Brief)
}

func publicationFallbackSubject(profile models.ProjectProfile) string {
	if profile.Tagline == "" {
		return "Story pitch: " + profile.Name
	}
	return fmt.Sprintf("Story pitch: %s - %s", profile.Name, profile.Tagline)
}

func publicationFallbackBody(profile models.ProjectProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear Editorial Team,\n\nWe'd like to share a story about %s. %s\n", profile.Name, profile.Brief)
	if len(profile.Achievements) > 0 {
		sb.WriteString("\nKey data points:\n")
		for _, a := range profile.Achievements {
			fmt.Fprintf(&sb, "- %s\n", a)
		}
	}
	sb.WriteString("\nWe'd welcome the opportunity to discuss this further.\n\nRegards")
	return sb.String()
}

// checkReady runs before any network request
func checkReady(cfg models.AIConfig, profile *models.ProjectProfile) error {
	if cfg.Provider == "" {
		return &ConfigurationError{Field: "provider", Message: "AI provider is not configured"}
	}
	if !cfg.Provider.IsValid() {
		return &ai.UnsupportedProviderError{Provider: cfg.Provider}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &ConfigurationError{Field: "apiKey", Message: "AI credential is not configured"}
	}
	if profile == nil || strings.TrimSpace(profile.Name) == "" {
		return &ConfigurationError{Field: "projectProfile", Message: "Project profile is not configured"}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
