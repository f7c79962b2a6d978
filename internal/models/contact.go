package models

import "strings"

// Contact is a journalist or editor. OutletID is a weak reference: removing
// the outlet leaves its contacts in place.
type Contact struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Role     string `json:"role" yaml:"role"`
	Outlet   string `json:"outlet" yaml:"outlet"`
	OutletID string `json:"outletId,omitempty" yaml:"outletId,omitempty"`
	Beat     string `json:"beat,omitempty" yaml:"beat,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty" yaml:"linkedIn,omitempty"`
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "Contact name is required"}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return &ValidationError{Field: "email", Message: "Contact email is invalid"}
	}
	return nil
}

// HasVerifiedEmail is false for contacts found without a visible address
func (c *Contact) HasVerifiedEmail() bool {
	return c.Email != ""
}
