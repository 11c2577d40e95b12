package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.UseLDAPS)
	assert.False(t, cfg.Debug)
}

func TestNew_EnvironmentFallback(t *testing.T) {
	t.Setenv("LDAPSHELL_HOST", "dc01.corp.local")
	t.Setenv("LDAPSHELL_DOMAIN", "corp.local")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "dc01.corp.local", cfg.Host)
	assert.Equal(t, "corp.local", cfg.Domain)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "host only",
			cfg:  Config{Host: "dc01"},
		},
		{
			name: "url only",
			cfg:  Config{URL: "ldaps://dc01:636"},
		},
		{
			name:    "no target",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "password and hash together",
			cfg:     Config{Host: "dc01", Password: "secret", NTHash: "aad3b435b51404eeaad3b435b51404ee"},
			wantErr: true,
		},
		{
			name: "hash alone",
			cfg:  Config{Host: "dc01", NTHash: "aad3b435b51404eeaad3b435b51404ee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLDAPURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "explicit URL wins",
			cfg:      Config{URL: "ldaps://dc01:3269", Host: "other"},
			expected: "ldaps://dc01:3269",
		},
		{
			name:     "plain host",
			cfg:      Config{Host: "dc01"},
			expected: "ldap://dc01:389",
		},
		{
			name:     "ldaps host",
			cfg:      Config{Host: "dc01", UseLDAPS: true},
			expected: "ldaps://dc01:636",
		},
		{
			name:     "host with explicit port",
			cfg:      Config{Host: "dc01:10389"},
			expected: "ldap://dc01:10389",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.LDAPURL())
		})
	}
}
