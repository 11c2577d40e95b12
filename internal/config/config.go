// Package config holds the shell's startup configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
)

// Config is the shell configuration, populated from flags with environment
// fallbacks (LDAPSHELL_* variables).
type Config struct {
	// Target
	URL    string `default:""` // Full LDAP URL; overrides Host
	Host   string `default:""` // Domain controller host or IP
	Domain string `default:""`
	BaseDN string `default:""`

	// Credentials
	Username       string `default:""`
	Password       string `default:""`
	NTHash         string `default:""` // NT hash for pass-the-hash
	KerberosRealm  string `default:""`
	KerberosCCache string `default:""`
	KerberosKeytab string `default:""`
	KerberosConfig string `default:""`
	KerberosSPN    string `default:""`

	// Transport
	UseLDAPS   bool          `default:"false"`
	StartTLS   bool          `default:"false"`
	SkipVerify bool          `default:"false"` // Accept untrusted certificates
	Timeout    time.Duration `default:"30s"`

	// Diagnostics
	Debug bool `default:"false"`
}

// New returns a Config with defaults applied and environment overrides
// merged in.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// applyEnvironment merges LDAPSHELL_* variables into unset fields. Flags
// populate fields before Validate runs, so explicit flags win.
func (c *Config) applyEnvironment() {
	setIfEmpty(&c.Host, "LDAPSHELL_HOST")
	setIfEmpty(&c.Domain, "LDAPSHELL_DOMAIN")
	setIfEmpty(&c.Username, "LDAPSHELL_USERNAME")
	setIfEmpty(&c.Password, "LDAPSHELL_PASSWORD")
	setIfEmpty(&c.NTHash, "LDAPSHELL_NT_HASH")
	setIfEmpty(&c.BaseDN, "LDAPSHELL_BASE_DN")
	setIfEmpty(&c.KerberosCCache, "KRB5CCNAME")
}

func setIfEmpty(field *string, env string) {
	if *field == "" {
		*field = os.Getenv(env)
	}
}

// Validate checks the configuration is sufficient to connect.
func (c *Config) Validate() error {
	if c.URL == "" && c.Host == "" {
		return fmt.Errorf("a target is required: set --url or --host")
	}
	if c.NTHash != "" && c.Password != "" {
		return fmt.Errorf("--hashes and --password are mutually exclusive")
	}
	return nil
}

// LDAPURL returns the effective LDAP URL for the configured target.
func (c *Config) LDAPURL() string {
	if c.URL != "" {
		return c.URL
	}

	scheme := "ldap"
	if c.UseLDAPS {
		scheme = "ldaps"
	}

	host := c.Host
	if !strings.Contains(host, ":") {
		if c.UseLDAPS {
			host += ":636"
		} else {
			host += ":389"
		}
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}
