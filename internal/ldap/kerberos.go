package ldap

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/go-ldap/ldap/v3/gssapi"
	krb5client "github.com/jcmturner/gokrb5/v8/client"
)

// bindKerberos performs a GSSAPI bind on the client's connection.
func (c *client) bindKerberos(ctx context.Context) error {
	gssapiClient, err := c.createGSSAPIClient()
	if err != nil {
		return fmt.Errorf("failed to create GSSAPI client: %w", err)
	}
	defer func() {
		_ = gssapiClient.DeleteSecContext()
	}()

	spn, err := c.buildServicePrincipal()
	if err != nil {
		return fmt.Errorf("failed to build service principal: %w", err)
	}

	c.logger.Debug().Str("spn", spn).Msg("performing GSSAPI bind")

	if err := c.conn.GSSAPIBind(gssapiClient, spn, ""); err != nil {
		return fmt.Errorf("GSSAPI bind failed: %w", err)
	}

	return nil
}

// createGSSAPIClient creates a GSSAPI client based on the configuration.
// Priority order: credential cache, keytab, password.
func (c *client) createGSSAPIClient() (ldap.GSSAPIClient, error) {
	cfg := c.config

	krb5confPath := cfg.KerberosConfig
	if krb5confPath == "" {
		krb5confPath = "/etc/krb5.conf"
	}
	if !fileExists(krb5confPath) {
		return nil, fmt.Errorf("kerberos configuration file not found at %s", krb5confPath)
	}

	if cfg.KerberosCCache != "" && fileExists(cfg.KerberosCCache) {
		return gssapi.NewClientFromCCache(cfg.KerberosCCache, krb5confPath, krb5client.DisablePAFXFAST(true))
	}

	// Honor KRB5CCNAME the way command-line Kerberos tooling does.
	if ccache := os.Getenv("KRB5CCNAME"); ccache != "" {
		path := strings.TrimPrefix(ccache, "FILE:")
		if fileExists(path) {
			return gssapi.NewClientFromCCache(path, krb5confPath, krb5client.DisablePAFXFAST(true))
		}
	}

	if cfg.KerberosKeytab != "" && fileExists(cfg.KerberosKeytab) {
		return gssapi.NewClientWithKeytab(cfg.Username, cfg.KerberosRealm, cfg.KerberosKeytab, krb5confPath, krb5client.DisablePAFXFAST(true))
	}

	if cfg.Username != "" && cfg.Password != "" {
		return gssapi.NewClientWithPassword(cfg.Username, cfg.KerberosRealm, cfg.Password, krb5confPath, krb5client.DisablePAFXFAST(true))
	}

	return nil, fmt.Errorf("no suitable credentials found for Kerberos authentication")
}

// buildServicePrincipal constructs the LDAP service principal name from the
// connection URL. An explicit KerberosSPN overrides the construction.
func (c *client) buildServicePrincipal() (string, error) {
	if c.config.KerberosSPN != "" {
		return c.config.KerberosSPN, nil
	}

	u, err := url.Parse(c.config.URL)
	if err != nil {
		return "", fmt.Errorf("invalid LDAP URL %q: %w", c.config.URL, err)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("hostname is required for service principal")
	}

	return fmt.Sprintf("ldap/%s", hostname), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
