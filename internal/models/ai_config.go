package models

import "strings"

// Provider identifies an AI completion backend
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// AuthMethod selects how the credential is presented to the provider
type AuthMethod string

const (
	AuthMethodAPIKey     AuthMethod = "apiKey"
	AuthMethodOAuthToken AuthMethod = "oauthToken"
)

// AIConfig is the singleton provider configuration of a workspace
type AIConfig struct {
	Provider     Provider   `json:"provider" yaml:"provider"`
	APIKey       string     `json:"apiKey" yaml:"apiKey"`
	AuthMethod   AuthMethod `json:"authMethod,omitempty" yaml:"authMethod,omitempty"`
	Model        string     `json:"model,omitempty" yaml:"model,omitempty"`
	SearchAPIKey string     `json:"searchApiKey,omitempty" yaml:"searchApiKey,omitempty"`
}

// IsValid reports whether p is one of the supported providers
func (p Provider) IsValid() bool {
	switch p {
	case ProviderAnthropic, ProviderOpenAI, ProviderGoogle:
		return true
	}
	return false
}

// DisplayName returns a user-friendly provider name
func (p Provider) DisplayName() string {
	switch p {
	case ProviderAnthropic:
		return "Anthropic Claude"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGoogle:
		return "Google Gemini"
	default:
		return string(p)
	}
}

// Validate validates the configuration before it is stored
func (c *AIConfig) Validate() error {
	if !c.Provider.IsValid() {
		return &ValidationError{Field: "provider", Message: "provider must be one of anthropic, openai, google"}
	}
	if len(strings.TrimSpace(c.APIKey)) < 8 {
		return &ValidationError{Field: "apiKey", Message: "API key is too short"}
	}
	switch c.AuthMethod {
	case "", AuthMethodAPIKey, AuthMethodOAuthToken:
	default:
		return &ValidationError{Field: "authMethod", Message: "authMethod must be apiKey or oauthToken"}
	}
	return nil
}

// EffectiveAuthMethod defaults an unset auth method to apiKey
func (c *AIConfig) EffectiveAuthMethod() AuthMethod {
	if c.AuthMethod == "" {
		return AuthMethodAPIKey
	}
	return c.AuthMethod
}

// Masked returns a copy safe to hand back to clients
func (c AIConfig) Masked() AIConfig {
	c.APIKey = MaskKey(c.APIKey)
	if c.SearchAPIKey != "" {
		c.SearchAPIKey = MaskKey(c.SearchAPIKey)
	}
	return c
}

// MaskKey keeps the first and last four characters of a credential
func MaskKey(key string) string {
	if len(key) < 12 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
