// Package host adapts the host shop platform (its settings, addresses and
// countries) to the collaborator interfaces the VAT engine consumes.
package host

import (
	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/policy"
	id "vatchecker/pkg/domain"
)

// SettingsConfig carries the operator settings read from configuration.
type SettingsConfig struct {
	LiveMode        bool
	OriginCountryID id.CountryID
	NoTaxGroupID    int64
	OfflinePolicy   policy.Policy
}

// Settings implements ports.ConfigProvider over immutable operator settings.
type Settings struct {
	registry *country.Registry
	cfg      SettingsConfig
}

func NewSettings(registry *country.Registry, cfg SettingsConfig) *Settings {
	if cfg.OfflinePolicy == "" {
		cfg.OfflinePolicy = policy.AlwaysInvalid
	}
	return &Settings{registry: registry, cfg: cfg}
}

func (s *Settings) IsEnabledCountry(code country.Code) bool { return s.registry.IsEnabled(code) }
func (s *Settings) OriginCountryID() id.CountryID           { return s.cfg.OriginCountryID }
func (s *Settings) OfflinePolicy() policy.Policy            { return s.cfg.OfflinePolicy }
func (s *Settings) LiveModeEnabled() bool                   { return s.cfg.LiveMode }
func (s *Settings) NoTaxGroupID() int64                     { return s.cfg.NoTaxGroupID }
