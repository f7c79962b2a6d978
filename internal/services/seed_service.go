package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/pkg/logger"
)

// Seed is a demo workspace. Outlets are referenced by name because ids are
// assigned on insert.
type Seed struct {
	AIConfig   *models.AIConfig       `yaml:"aiConfig,omitempty"`
	Profile    *models.ProjectProfile `yaml:"profile,omitempty"`
	StyleGuide *string                `yaml:"styleGuide,omitempty"`
	Outlets    []models.Outlet        `yaml:"outlets"`
	Contacts   []models.Contact       `yaml:"contacts"`
	Campaigns  []SeedCampaign         `yaml:"campaigns"`
}

type SeedCampaign struct {
	Name          string                 `yaml:"name"`
	Frequency     models.Frequency       `yaml:"frequency"`
	Status        models.CampaignStatus  `yaml:"status"`
	TargetOutlets []string               `yaml:"targetOutlets"`
	TargetNiches  []string               `yaml:"targetNiches"`
	Emails        []models.OutreachEmail `yaml:"emails"`
}

// LoadSeedFile reads a YAML seed
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &seed, nil
}

// ApplySeed fills an empty workspace from seed. It returns false without
// changes when the workspace already holds data.
func (s *StoreService) ApplySeed(seed *Seed) (bool, error) {
	state := s.State()
	if state.ProjectProfile != nil || len(state.Outlets) > 0 || len(state.Contacts) > 0 ||
		len(state.Campaigns) > 0 || len(state.Emails) > 0 {
		return false, nil
	}

	if seed.AIConfig != nil {
		if err := s.SetAIConfig(*seed.AIConfig); err != nil {
			return false, fmt.Errorf("seed ai config: %w", err)
		}
	}
	if seed.Profile != nil {
		if err := s.SetProjectProfile(*seed.Profile); err != nil {
			return false, fmt.Errorf("seed profile: %w", err)
		}
	}
	if seed.StyleGuide != nil {
		if err := s.SetStyleGuide(*seed.StyleGuide); err != nil {
			return false, err
		}
	}

	outletIDs := make(map[string]string, len(seed.Outlets))
	for _, o := range seed.Outlets {
		picked := o.IsUserPicked
		var stored models.Outlet
		var err error
		if picked || !o.IsDiscovered {
			stored, err = s.AddOutlet(o)
		} else {
			var added []models.Outlet
			added, err = s.AddDiscoveredOutlets([]models.Outlet{o})
			if err == nil {
				stored = added[0]
			}
		}
		if err != nil {
			return false, fmt.Errorf("seed outlet %q: %w", o.Name, err)
		}
		outletIDs[normalizeName(o.Name)] = stored.ID
	}

	contacts := make([]models.Contact, 0, len(seed.Contacts))
	contactIDs := make(map[string]string)
	for _, c := range seed.Contacts {
		if c.OutletID == "" {
			c.OutletID = outletIDs[normalizeName(c.Outlet)]
		}
		contacts = append(contacts, c)
	}
	added, err := s.AddContacts(contacts)
	if err != nil {
		return false, fmt.Errorf("seed contacts: %w", err)
	}
	for _, c := range added {
		contactIDs[strings.ToLower(c.Name)] = c.ID
	}

	for _, sc := range seed.Campaigns {
		targets := make([]string, 0, len(sc.TargetOutlets))
		for _, name := range sc.TargetOutlets {
			id, ok := outletIDs[normalizeName(name)]
			if !ok {
				return false, fmt.Errorf("seed campaign %q targets unknown outlet %q", sc.Name, name)
			}
			targets = append(targets, id)
		}

		campaign, err := s.CreateCampaign(models.Campaign{
			Name:          sc.Name,
			Frequency:     sc.Frequency,
			TargetOutlets: targets,
			TargetNiches:  sc.TargetNiches,
		})
		if err != nil {
			return false, fmt.Errorf("seed campaign %q: %w", sc.Name, err)
		}
		if err := s.seedCampaignStatus(campaign.ID, sc.Status); err != nil {
			return false, fmt.Errorf("seed campaign %q: %w", sc.Name, err)
		}

		emails := make([]models.OutreachEmail, 0, len(sc.Emails))
		for _, e := range sc.Emails {
			e.CampaignID = campaign.ID
			if e.ContactID == "" {
				e.ContactID = contactIDs[strings.ToLower(e.ContactName)]
			}
			emails = append(emails, e)
		}
		if _, err := s.AddEmails(emails); err != nil {
			return false, fmt.Errorf("seed emails for %q: %w", sc.Name, err)
		}
	}

	logger.Infof("Seeded workspace with %d outlets, %d contacts and %d campaigns",
		len(seed.Outlets), len(added), len(seed.Campaigns))
	return true, nil
}

func (s *StoreService) seedCampaignStatus(id string, status models.CampaignStatus) error {
	switch status {
	case "", models.CampaignStatusDraft:
		return nil
	case models.CampaignStatusActive:
		_, err := s.UpdateCampaignStatus(id, models.CampaignStatusActive)
		return err
	case models.CampaignStatusPaused:
		if _, err := s.UpdateCampaignStatus(id, models.CampaignStatusActive); err != nil {
			return err
		}
		_, err := s.UpdateCampaignStatus(id, models.CampaignStatusPaused)
		return err
	default:
		return &models.ValidationError{Field: "status", Message: "Seed campaigns may only be draft, active or paused"}
	}
}
