package models

import "strings"

// ProjectProfile describes the project being pitched
type ProjectProfile struct {
	Name         string   `json:"name" yaml:"name"`
	Tagline      string   `json:"tagline" yaml:"tagline"`
	Brief        string   `json:"brief" yaml:"brief"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	Website      string   `json:"website,omitempty" yaml:"website,omitempty"`
	Category     string   `json:"category" yaml:"category"`
}

func (p *ProjectProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "Project name is required"}
	}
	if strings.TrimSpace(p.Brief) == "" {
		return &ValidationError{Field: "brief", Message: "Project brief is required"}
	}
	return nil
}
