package config

import "time"

// UpstreamConfig contains configuration for the remote resident-management
// JSON API this service fronts.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream API, e.g. "https://api.kebele.example.com".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9000"`

	// Timeout bounds every upstream call. The UI treats a timeout like any
	// other failed request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	if u.Timeout <= 0 {
		u.Timeout = 10 * time.Second
	}
	// An unbounded upstream call would hold the in-flight guard forever.
	if u.Timeout > time.Minute {
		u.Timeout = time.Minute
	}
}
