// Package config holds per-domain run configuration. A RunConfig is threaded
// through a run while classification happens and is never part of the
// serialized report.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// RunConfig carries everything a single domain's test run needs.
type RunConfig struct {
	// Domain is the bare domain name under test, e.g. "example.com".
	Domain string `mapstructure:"domain" json:"domain"`

	// URL is the host used for website-facing checks. Defaults to
	// "www.<domain>".
	URL string `mapstructure:"url" json:"url"`

	// Name is a display name for headlines. Defaults to the domain.
	Name string `mapstructure:"name" json:"name"`

	// Commands overrides the command list for this domain, if set.
	Commands []string `mapstructure:"commands" json:"commands,omitempty"`

	// Quiet suppresses in-progress console output.
	Quiet bool `mapstructure:"quiet" json:"-"`

	// Raw keeps per-item results in the serialized report.
	Raw bool `mapstructure:"raw" json:"-"`

	// NotifySlowPort is a hook for overriding the slow-port PUNT policy.
	// No policy beyond the NOTICE default is applied yet.
	NotifySlowPort bool `mapstructure:"notify_slow_port" json:"-"`
}

// ForDomain returns a config with defaults filled for a bare domain name.
func ForDomain(domain string) *RunConfig {
	domain = strings.TrimSpace(domain)
	return &RunConfig{
		Domain: domain,
		URL:    "www." + domain,
		Name:   domain,
	}
}

// Load builds the config for a domain, applying overrides from
// <domain>.json in dir when that file exists. A missing file is not an
// error; a malformed one is.
func Load(domain, dir string) (*RunConfig, error) {
	cfg := ForDomain(domain)
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, domain+".json")
	if _, err := os.Stat(path); err != nil {
		// No per-domain file; the defaults stand.
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config for %s: %w", domain, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config for %s: %w", domain, err)
	}

	// Re-apply defaults for fields the file left empty.
	if cfg.Domain == "" {
		cfg.Domain = domain
	}
	if cfg.URL == "" {
		cfg.URL = "www." + cfg.Domain
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Domain
	}
	return cfg, nil
}

// ParseDomains splits command-line domain input (a single domain or a
// comma-separated list) into trimmed, non-empty domain names.
func ParseDomains(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
