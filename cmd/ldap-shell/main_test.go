package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := rootCommand()
	flags := cmd.Flags()

	for _, name := range []string{
		"url", "host", "domain", "username", "password", "hashes", "base-dn",
		"kerberos-realm", "ccache", "keytab", "krb5-conf", "spn",
		"ldaps", "starttls", "insecure", "debug",
	} {
		assert.NotNil(t, flags.Lookup(name), "flag --%s", name)
	}
}

func TestRootCommandKerberosFlagsReachConfig(t *testing.T) {
	cmd := rootCommand()
	require.NoError(t, cmd.Flags().Set("keytab", "/etc/ldap-shell.keytab"))
	require.NoError(t, cmd.Flags().Set("spn", "ldap/dc01.corp.local"))

	assert.Equal(t, "/etc/ldap-shell.keytab", cmd.Flags().Lookup("keytab").Value.String())
	assert.Equal(t, "ldap/dc01.corp.local", cmd.Flags().Lookup("spn").Value.String())
}
