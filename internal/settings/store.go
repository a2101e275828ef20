package settings

import "sync"

// Store is the singleton settings record. It does not validate values.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

func NewStore(initial Settings) *Store {
	return &Store{settings: initial.clone()}
}

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.clone()
}

// WebhookURL returns the configured order webhook, or "" when disabled.
func (s *Store) WebhookURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.Integration.WebhookURL
}

// Update merges the set fields of p and returns the resulting record.
func (s *Store) Update(p Patch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.FacebookPixel != nil {
		s.settings.Tracking.FacebookPixel = *p.FacebookPixel
	}
	if p.GoogleAnalytics != nil {
		s.settings.Tracking.GoogleAnalytics = *p.GoogleAnalytics
	}
	if p.TikTokPixel != nil {
		s.settings.Tracking.TikTokPixel = *p.TikTokPixel
	}
	if p.WebhookURL != nil {
		s.settings.Integration.WebhookURL = *p.WebhookURL
	}
	if p.DomainName != nil {
		s.settings.Domain.Name = *p.DomainName
	}
	if p.NameServers != nil {
		s.settings.Domain.NameServers = append([]string(nil), (*p.NameServers)...)
	}
	if p.CustomScripts != nil {
		s.settings.Scripts.Custom = *p.CustomScripts
	}

	return s.settings.clone()
}

func (s *Store) UpdateTracking(t Tracking) Settings {
	return s.Update(Patch{
		FacebookPixel:   &t.FacebookPixel,
		GoogleAnalytics: &t.GoogleAnalytics,
		TikTokPixel:     &t.TikTokPixel,
	})
}

func (s *Store) UpdateIntegration(i Integration) Settings {
	return s.Update(Patch{WebhookURL: &i.WebhookURL})
}

func (s *Store) UpdateDomain(d Domain) Settings {
	nameServers := d.NameServers
	if nameServers == nil {
		nameServers = []string{}
	}
	return s.Update(Patch{DomainName: &d.Name, NameServers: &nameServers})
}

func (s *Store) UpdateScripts(sc Scripts) Settings {
	return s.Update(Patch{CustomScripts: &sc.Custom})
}
