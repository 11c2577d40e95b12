package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainNameFromDN(t *testing.T) {
	tests := []struct {
		name     string
		dn       string
		expected string
	}{
		{
			name:     "user DN",
			dn:       "CN=Users,DC=corp,DC=example,DC=com",
			expected: "corp.example.com",
		},
		{
			name:     "single domain component",
			dn:       "CN=x,DC=local",
			expected: "local",
		},
		{
			name:     "lowercase domain components",
			dn:       "cn=x,dc=corp,dc=local",
			expected: "corp.local",
		},
		{
			name:     "domain root only",
			dn:       "DC=corp,DC=local",
			expected: "corp.local",
		},
		{
			name:     "no domain components",
			dn:       "CN=x,OU=y",
			expected: "",
		},
		{
			name:     "empty",
			dn:       "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainNameFromDN(tt.dn))
		})
	}
}

func TestNameFromDN(t *testing.T) {
	tests := []struct {
		name     string
		dn       string
		expected string
	}{
		{
			name:     "common name",
			dn:       "CN=John Doe,OU=Staff,DC=corp,DC=local",
			expected: "John Doe",
		},
		{
			name:     "organizational unit",
			dn:       "OU=Workstations,DC=corp,DC=local",
			expected: "Workstations",
		},
		{
			name:     "single component",
			dn:       "CN=admin",
			expected: "admin",
		},
		{
			name:     "no equals sign",
			dn:       "garbage",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NameFromDN(tt.dn))
		})
	}
}
