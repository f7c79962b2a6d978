package ai

import (
	"fmt"
	"strings"

	"github.com/prnow/prnow/internal/models"
)

const discoverSystemPrompt = `You are a PR research assistant. Given a project profile and target niches, suggest relevant media outlets, blogs, newsletters, podcasts, and YouTube channels that might cover this project. Focus on a mix of large outlets and smaller niche ones. Return JSON array.`

const contactsSystemPrompt = `You are a PR research assistant. Extract real journalist/editor contact information from web search results. Only include contacts you can verify from the search results. Do NOT make up or hallucinate any names, emails, or roles. If you cannot find real contacts, return an empty array. For emails, only include ones that actually appeared in the search results.`

const individualSystemPrompt = `You are a PR copywriter. Draft a personalized, compelling pitch email to a journalist. Be concise, relevant to their beat, and lead with value. Don't be salesy. Be human and direct. The email should feel like it was written specifically for this person.`

const publicationSystemPrompt = `You are a PR copywriter. Draft a publication-level pitch email. This goes to an editorial team or tips inbox, so it should be more formal and newsworthy than an individual pitch. Focus on the story angle, not just the product. Include data points and a clear hook.`

// BuildDiscoverPrompt asks for 5-8 outlets that are not in existing. The
// existing names are listed verbatim so the model can skip them.
func BuildDiscoverPrompt(profile models.ProjectProfile, targetNiches, existing []string) (string, string) {
	already := "None"
	if len(existing) > 0 {
		already = strings.Join(existing, ", ")
	}

	user := fmt.Sprintf(`Project: %s
Description: %s
Category: %s
Target niches: %s
Already targeting: %s

Return a JSON array of 5-8 NEW outlets (not already listed) with this shape:
[{"name": "...", "type": "publication|blog|podcast|newsletter|youtube", "niche": "...", "url": "...", "audienceSize": "...", "relevanceScore": 0-100, "priority": "high|medium|low"}]

Only return the JSON array, no other text.`,
		profile.Name, profile.Brief, profile.Category, strings.Join(targetNiches, ", "), already)

	return discoverSystemPrompt, user
}

// BuildContactsFromResultsPrompt asks the model to extract contacts from
// search results gathered beforehand.
func BuildContactsFromResultsPrompt(profile models.ProjectProfile, outlet models.Outlet, searchContext string) (string, string) {
	user := fmt.Sprintf(`I need to find real journalists/editors at %s who cover %s.

Here are web search results:
---
%s
---

From ONLY the information in the search results above, extract real contacts. Do NOT invent any details.
If an email is not visible in the results, set email to an empty string.

Return a JSON array (can be empty if no real contacts found):
[{"name": "...", "email": "...", "role": "...", "beat": "...", "linkedIn": "..."}]

Only return the JSON array, no other text.`,
		outlet.Name, coverage(profile, outlet), searchContext)

	return contactsSystemPrompt, user
}

// BuildContactsWebSearchPrompt is used with providers that run the search
// themselves through a tool.
func BuildContactsWebSearchPrompt(profile models.ProjectProfile, outlet models.Outlet) (string, string) {
	user := fmt.Sprintf(`Search the web for real journalists/editors at %s who cover %s.
Useful searches: "%s journalist editor contact email %s", "%s staff writers reporters %s".

Only include people you found in the search results. Do NOT invent any details.
If an email address did not appear in the results, set email to an empty string.

Return a JSON array (can be empty if no real contacts found):
[{"name": "...", "email": "...", "role": "...", "beat": "...", "linkedIn": "..."}]

Only return the JSON array, no other text.`,
		outlet.Name, coverage(profile, outlet),
		outlet.Name, outlet.Niche, outlet.Name, profile.Category)

	return contactsSystemPrompt, user
}

// ContactSearchQueries are the web searches run per outlet
func ContactSearchQueries(profile models.ProjectProfile, outlet models.Outlet) []string {
	return []string{
		strings.TrimSpace(fmt.Sprintf("%s journalist editor contact email %s", outlet.Name, outlet.Niche)),
		strings.TrimSpace(fmt.Sprintf("%s staff writers reporters %s", outlet.Name, profile.Category)),
	}
}

func BuildIndividualEmailPrompt(profile models.ProjectProfile, contact models.Contact, styleGuide string) (string, string) {
	beat := contact.Beat
	if beat == "" {
		beat = "General"
	}

	user := fmt.Sprintf(`%s

Contact: %s, %s at %s
Their beat: %s

Write the pitch email. Return JSON:
{"subject": "...", "body": "..."}

Only return the JSON, no other text.`,
		profileBlock(profile), contact.Name, contact.Role, contact.Outlet, beat)

	return WithStyleGuide(individualSystemPrompt, styleGuide), user
}

// BuildPublicationEmailPrompt targets the editorial inbox and asks for a
// tips address at placeholderDomain.
func BuildPublicationEmailPrompt(profile models.ProjectProfile, outlet models.Outlet, placeholderDomain, styleGuide string) (string, string) {
	user := fmt.Sprintf(`%s

Publication: %s (%s, niche: %s)

Write a formal pitch for the editorial team. Return JSON:
{"subject": "...", "body": "...", "contactName": "Editorial Team", "contactEmail": "tips@%s"}

Only return the JSON, no other text.`,
		profileBlock(profile), outlet.Name, outlet.Type, outlet.Niche, placeholderDomain)

	return WithStyleGuide(publicationSystemPrompt, styleGuide), user
}

// WithStyleGuide appends the user's style guide verbatim
func WithStyleGuide(system, styleGuide string) string {
	if strings.TrimSpace(styleGuide) == "" {
		return system
	}
	return system + "\n\nStyle guide (follow these instructions when writing):\n" + styleGuide
}

func profileBlock(profile models.ProjectProfile) string {
	website := profile.Website
	if website == "" {
		website = "N/A"
	}
	return fmt.Sprintf(`Project: %s
Tagline: %s
Brief: %s
Key achievements: %s
Website: %s`,
		profile.Name, profile.Tagline, profile.Brief, strings.Join(profile.Achievements, "; "), website)
}

func coverage(profile models.ProjectProfile, outlet models.Outlet) string {
	if outlet.Niche != "" {
		return outlet.Niche
	}
	return profile.Category
}
