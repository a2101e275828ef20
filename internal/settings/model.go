package settings

// Tracking holds the marketing pixel identifiers.
type Tracking struct {
	FacebookPixel   string `json:"facebook_pixel"`
	GoogleAnalytics string `json:"google_analytics"`
	TikTokPixel     string `json:"tiktok_pixel"`
}

// Integration holds outbound integration targets.
type Integration struct {
	// Orders are POSTed here after checkout. Empty disables the sync.
	WebhookURL string `json:"google_sheets_webhook"`
}

// Domain holds display-only hosting values.
type Domain struct {
	Name        string   `json:"domain_name"`
	NameServers []string `json:"name_servers"`
}

// Scripts holds admin-supplied code injected into storefront pages.
// It is served as-is: only trusted admins may set it.
type Scripts struct {
	Custom string `json:"custom_scripts"`
}

type Settings struct {
	Tracking    Tracking    `json:"tracking"`
	Integration Integration `json:"integration"`
	Domain      Domain      `json:"domain"`
	Scripts     Scripts     `json:"scripts"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	FacebookPixel   *string   `json:"facebook_pixel,omitempty"`
	GoogleAnalytics *string   `json:"google_analytics,omitempty"`
	TikTokPixel     *string   `json:"tiktok_pixel,omitempty"`
	WebhookURL      *string   `json:"google_sheets_webhook,omitempty"`
	DomainName      *string   `json:"domain_name,omitempty"`
	NameServers     *[]string `json:"name_servers,omitempty"`
	CustomScripts   *string   `json:"custom_scripts,omitempty"`
}

// Defaults returns the initial settings of a fresh store.
func Defaults() Settings {
	return Settings{
		Domain: Domain{
			Name:        "www.my-morocco-store.com",
			NameServers: []string{"ns1.hosting.com", "ns2.hosting.com"},
		},
	}
}

func (s Settings) clone() Settings {
	c := s
	if s.Domain.NameServers != nil {
		c.Domain.NameServers = append([]string(nil), s.Domain.NameServers...)
	}
	return c
}
