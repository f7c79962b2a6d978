package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prnow/prnow/internal/ai"
	"github.com/prnow/prnow/internal/models"
)

func TestDraftIndividualEmail(t *testing.T) {
	t.Run("Successful draft", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"subject":"Hi Jane","body":"..."}`}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftIndividualEmail(context.Background(), testConfig(models.ProviderAnthropic),
			testProfile(), testContact(), "campaign-1", "")
		require.NoError(t, err)

		assert.Equal(t, models.EmailStatusPendingApproval, email.Status)
		assert.Equal(t, "Jane Doe", email.ContactName)
		assert.Equal(t, "Hi Jane", email.Subject)
		assert.Equal(t, "...", email.Body)
		assert.Equal(t, "campaign-1", email.CampaignID)
		assert.Equal(t, "contact-1", email.ContactID)
		assert.Equal(t, models.EmailTypeIndividual, email.Type)
	})

	t.Run("Fallback on garbage output", func(t *testing.T) {
		completer := &stubCompleter{reply: "not json at all"}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftIndividualEmail(context.Background(), testConfig(models.ProviderAnthropic),
			testProfile(), testContact(), "campaign-1", "")
		require.NoError(t, err)

		assert.Contains(t, email.Subject, "Acme")
		assert.Contains(t, email.Body, "Y")
		assert.Contains(t, email.Body, "Hi Jane Doe")
		assert.Equal(t, models.EmailStatusPendingApproval, email.Status)
	})

	t.Run("Fenced output with markup", func(t *testing.T) {
		completer := &stubCompleter{reply: "```json\n{\"subject\":\"<b>Hello</b> Jane\",\"body\":\"Tom &amp; Jerry\"}\n```"}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftIndividualEmail(context.Background(), testConfig(models.ProviderOpenAI),
			testProfile(), testContact(), "", "")
		require.NoError(t, err)
		assert.Equal(t, "Hello Jane", email.Subject)
		assert.Equal(t, "Tom & Jerry", email.Body)
	})

	t.Run("Style guide is appended to the system prompt", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"subject":"s","body":"b"}`}
		service := NewOutreachService(completer, nil)

		_, err := service.DraftIndividualEmail(context.Background(), testConfig(models.ProviderAnthropic),
			testProfile(), testContact(), "", "Never use exclamation marks.")
		require.NoError(t, err)
		assert.Contains(t, completer.systems[0], "Never use exclamation marks.")
		assert.True(t, containsAll(completer.users[0], "Jane Doe", "Reporter", "Daily Bugle", "Tech", "Acme"))
	})

	t.Run("Provider errors propagate", func(t *testing.T) {
		completer := &stubCompleter{err: &ai.HTTPError{Provider: "anthropic", StatusCode: 429, Body: "rate limited"}}
		service := NewOutreachService(completer, nil)

		_, err := service.DraftIndividualEmail(context.Background(), testConfig(models.ProviderAnthropic),
			testProfile(), testContact(), "", "")
		var httpErr *ai.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, 429, httpErr.StatusCode)
	})
}

func TestDraftPublicationEmail(t *testing.T) {
	outlet := models.Outlet{ID: "outlet-1", Name: "Tech Crunch!", Type: models.OutletTypePublication, Niche: "startups"}

	t.Run("Placeholder address", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"subject":"Story","body":"Body","contactName":"Editors","contactEmail":"news@techcrunch.example.com"}`}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftPublicationEmail(context.Background(), testConfig(models.ProviderGoogle),
			testProfile(), outlet, "campaign-1", "")
		require.NoError(t, err)

		assert.Equal(t, "news@techcrunch.example.com", email.ContactEmail)
		assert.True(t, email.PlaceholderEmail)
		assert.Equal(t, "Editors", email.ContactName)
		assert.Equal(t, "Tech Crunch!", email.OutletName)
		assert.Equal(t, models.EmailTypePublication, email.Type)
		assert.Contains(t, completer.users[0], "tips@techcrunch.example.com")
	})

	t.Run("Foreign address is replaced", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"subject":"Story","body":"Body","contactEmail":"editor@techcrunch.com"}`}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftPublicationEmail(context.Background(), testConfig(models.ProviderGoogle),
			testProfile(), outlet, "", "")
		require.NoError(t, err)
		assert.Equal(t, "tips@techcrunch.example.com", email.ContactEmail)
		assert.Equal(t, "Editorial Team", email.ContactName)
	})

	t.Run("Fallback on garbage output", func(t *testing.T) {
		completer := &stubCompleter{reply: "{{{"}
		service := NewOutreachService(completer, nil)

		email, err := service.DraftPublicationEmail(context.Background(), testConfig(models.ProviderGoogle),
			testProfile(), outlet, "", "")
		require.NoError(t, err)
		assert.Equal(t, "Story pitch: Acme - X", email.Subject)
		assert.True(t, containsAll(email.Body, "Dear Editorial Team", "Y", "- Z"))
		assert.Equal(t, models.EmailStatusPendingApproval, email.Status)
	})

	t.Run("Outlet without letters", func(t *testing.T) {
		assert.Equal(t, "outlet.example.com", PlaceholderDomain(models.Outlet{Name: "123"}))
	})
}

func TestDiscoverOutlets(t *testing.T) {
	t.Run("Prompt lists existing outlets verbatim", func(t *testing.T) {
		completer := &stubCompleter{reply: `[]`}
		service := NewOutreachService(completer, nil)
		existing := []string{"TechCrunch", "Hacker News", "The Pragmatic Engineer"}

		outlets, err := service.DiscoverOutlets(context.Background(), testConfig(models.ProviderOpenAI),
			testProfile(), []string{"devtools"}, existing)
		require.NoError(t, err)
		assert.Empty(t, outlets)

		for _, name := range existing {
			assert.Contains(t, completer.users[0], name)
		}
	})

	t.Run("Shapes and dedupes drafts", func(t *testing.T) {
		completer := &stubCompleter{reply: `Here you go:
[
  {"name":"Dev Weekly","type":"Newsletter","niche":"","url":"https://devweekly.example","audienceSize":25000,"relevanceScore":"140","priority":"HIGH"},
  {"name":"techcrunch","type":"publication","relevanceScore":80},
  {"name":"Dev  Weekly","type":"blog"},
  {"type":"magazine","priority":"urgent","relevanceScore":-5}
]`}
		service := NewOutreachService(completer, nil)

		outlets, err := service.DiscoverOutlets(context.Background(), testConfig(models.ProviderOpenAI),
			testProfile(), []string{"devtools", "ai"}, []string{"TechCrunch"})
		require.NoError(t, err)
		require.Len(t, outlets, 2)

		first := outlets[0]
		assert.Equal(t, "Dev Weekly", first.Name)
		assert.Equal(t, models.OutletTypeNewsletter, first.Type)
		assert.Equal(t, "devtools", first.Niche)
		assert.Equal(t, "25000", first.AudienceSize)
		require.NotNil(t, first.RelevanceScore)
		assert.Equal(t, 100, *first.RelevanceScore)
		assert.Equal(t, models.PriorityHigh, first.Priority)
		assert.False(t, first.IsUserPicked)
		assert.True(t, first.IsDiscovered)

		second := outlets[1]
		assert.Equal(t, "Unknown", second.Name)
		assert.Equal(t, models.OutletTypePublication, second.Type)
		assert.Equal(t, models.PriorityMedium, second.Priority)
		require.NotNil(t, second.RelevanceScore)
		assert.Equal(t, 0, *second.RelevanceScore)
	})

	t.Run("Garbage output yields no outlets", func(t *testing.T) {
		service := NewOutreachService(&stubCompleter{reply: "I could not find any."}, nil)
		outlets, err := service.DiscoverOutlets(context.Background(), testConfig(models.ProviderOpenAI),
			testProfile(), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, outlets)
	})
}

func TestFindContacts(t *testing.T) {
	outlet := models.Outlet{ID: "outlet-1", Name: "Daily Bugle", Niche: "Tech"}

	t.Run("Capability mismatch makes no HTTP calls", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gateway := ai.NewDefaultGateway(ai.Endpoints{
			AnthropicBaseURL: server.URL,
			OpenAIBaseURL:    server.URL,
			GoogleBaseURL:    server.URL,
		}, 0)
		service := NewOutreachService(gateway, ai.NewSearchClient(server.URL, 0))

		_, err := service.FindContacts(context.Background(), testConfig(models.ProviderGoogle), testProfile(), outlet)

		var capabilityErr *CapabilityError
		require.True(t, errors.As(err, &capabilityErr))
		assert.Equal(t, "google", capabilityErr.Provider)
		assert.Contains(t, capabilityErr.Message, "Anthropic")
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("Built-in search", func(t *testing.T) {
		completer := &stubCompleter{
			search: true,
			reply:  `[{"name":"Jane Doe","email":"jane@bugle.com","role":"","beat":"Tech"},{"name":"","email":"not-an-email"}]`,
		}
		service := NewOutreachService(completer, nil)

		contacts, err := service.FindContacts(context.Background(), testConfig(models.ProviderAnthropic), testProfile(), outlet)
		require.NoError(t, err)
		require.Len(t, contacts, 2)

		assert.True(t, completer.lastOpts.WantSearch)
		assert.Equal(t, "jane@bugle.com", contacts[0].Email)
		assert.Equal(t, "Journalist", contacts[0].Role)
		assert.Equal(t, "Daily Bugle", contacts[0].Outlet)
		assert.Equal(t, "outlet-1", contacts[0].OutletID)
		assert.Equal(t, "Unknown", contacts[1].Name)
		assert.Empty(t, contacts[1].Email)
	})

	t.Run("Search API blanks unverified emails", func(t *testing.T) {
		completer := &stubCompleter{
			reply: `[{"name":"Jane Doe","email":"JANE@bugle.com","role":"Reporter"},{"name":"John Roe","email":"john@bugle.com","role":"Editor"}]`,
		}
		searcher := &stubSearcher{results: "[1] Jane Doe\nReach jane@bugle.com for tips\nURL: https://bugle.com"}
		service := NewOutreachService(completer, searcher)

		cfg := testConfig(models.ProviderOpenAI)
		cfg.SearchAPIKey = "serper-key"
		contacts, err := service.FindContacts(context.Background(), cfg, testProfile(), outlet)
		require.NoError(t, err)
		require.Len(t, contacts, 2)

		assert.Len(t, searcher.queries, 2)
		assert.False(t, completer.lastOpts.WantSearch)
		assert.Contains(t, completer.users[0], "jane@bugle.com for tips")
		assert.Equal(t, "JANE@bugle.com", contacts[0].Email)
		assert.Empty(t, contacts[1].Email)
	})
}

func TestOperationsRequireConfiguration(t *testing.T) {
	completer := &stubCompleter{reply: `{}`}
	service := NewOutreachService(completer, nil)

	testCases := []struct {
		name    string
		config  models.AIConfig
		profile models.ProjectProfile
		check   func(t *testing.T, err error)
	}{
		{
			name:    "Missing provider",
			config:  models.AIConfig{APIKey: "test-key-123456"},
			profile: testProfile(),
			check: func(t *testing.T, err error) {
				var configErr *ConfigurationError
				assert.True(t, errors.As(err, &configErr))
			},
		},
		{
			name:    "Missing credential",
			config:  models.AIConfig{Provider: models.ProviderOpenAI},
			profile: testProfile(),
			check: func(t *testing.T, err error) {
				var configErr *ConfigurationError
				assert.True(t, errors.As(err, &configErr))
				assert.Equal(t, "apiKey", configErr.Field)
			},
		},
		{
			name:    "Missing profile",
			config:  testConfig(models.ProviderOpenAI),
			profile: models.ProjectProfile{},
			check: func(t *testing.T, err error) {
				var configErr *ConfigurationError
				assert.True(t, errors.As(err, &configErr))
				assert.Equal(t, "projectProfile", configErr.Field)
			},
		},
		{
			name:    "Unknown provider",
			config:  models.AIConfig{Provider: "mistral", APIKey: "test-key-123456"},
			profile: testProfile(),
			check: func(t *testing.T, err error) {
				var unsupported *ai.UnsupportedProviderError
				assert.True(t, errors.As(err, &unsupported))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.DraftIndividualEmail(context.Background(), tc.config, tc.profile, testContact(), "", "")
			require.Error(t, err)
			tc.check(t, err)
		})
	}
	assert.Equal(t, 0, completer.callCount())
}
