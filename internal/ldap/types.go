package ldap

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// ConnectionConfig holds configuration for the LDAP connection.
type ConnectionConfig struct {
	// Connection settings
	URL     string        // LDAP URL (ldap:// or ldaps://)
	Domain  string        // AD DNS domain, used for NTLM and Kerberos
	BaseDN  string        // Search base; discovered from the RootDSE when empty
	Timeout time.Duration // Network timeout for dial and searches

	// Authentication settings
	Username       string // sAMAccountName or UPN
	Password       string // Password for simple/NTLM bind
	NTHash         string // NT hash for NTLM pass-the-hash bind
	KerberosRealm  string // Kerberos realm for GSSAPI authentication
	KerberosCCache string // Path to a credential cache (KRB5CCNAME style)
	KerberosKeytab string // Path to a keytab file
	KerberosConfig string // Path to krb5.conf
	KerberosSPN    string // Explicit service principal override

	// TLS settings
	TLSConfig *tls.Config
	UseTLS    bool // Negotiate StartTLS on a plain connection
	SkipTLS   bool // Skip TLS entirely
}

// DefaultConfig returns a secure default configuration.
func DefaultConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Timeout: 30 * time.Second,
		UseTLS:  true,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// AuthMethod defines authentication method types.
type AuthMethod int

const (
	AuthMethodSimpleBind AuthMethod = iota // Username/password simple bind
	AuthMethodNTLM                         // NTLM bind (password or NT hash)
	AuthMethodKerberos                     // GSSAPI/Kerberos bind
)

// String returns string representation of authentication method.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodSimpleBind:
		return "simple"
	case AuthMethodNTLM:
		return "ntlm"
	case AuthMethodKerberos:
		return "kerberos"
	default:
		return "unknown"
	}
}

// GetAuthMethod determines the authentication method from the configuration.
// Kerberos credentials take precedence, then NTLM (a hash always means NTLM,
// as does a password combined with a domain), then simple bind.
func (c *ConnectionConfig) GetAuthMethod() AuthMethod {
	if c.KerberosRealm != "" && (c.KerberosCCache != "" || c.KerberosKeytab != "" || c.Username != "") {
		return AuthMethodKerberos
	}

	if c.NTHash != "" {
		return AuthMethodNTLM
	}

	if c.Domain != "" && c.Username != "" && c.Password != "" {
		return AuthMethodNTLM
	}

	return AuthMethodSimpleBind
}

// SearchScope defines LDAP search scope.
type SearchScope int

const (
	ScopeBaseObject SearchScope = iota
	ScopeSingleLevel
	ScopeWholeSubtree
)

// SearchRequest encapsulates LDAP search parameters.
type SearchRequest struct {
	BaseDN     string
	Scope      SearchScope
	Filter     string
	Attributes []string
	SizeLimit  int
	TimeLimit  time.Duration
	Controls   []ldap.Control
}

// SearchResult contains search results and metadata.
type SearchResult struct {
	Entries []*ldap.Entry
	Total   int
}

// Searcher is the read-only directory-search port. The completion engine and
// the resolver depend on this rather than on the full client.
type Searcher interface {
	// Search runs a single non-paged search.
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)

	// SearchWithPaging runs a search using the simple paged results control
	// and accumulates all pages.
	SearchWithPaging(ctx context.Context, req *SearchRequest, pageSize uint32) (*SearchResult, error)
}

// Client provides high-level LDAP operations over one connection.
type Client interface {
	Searcher

	// Connect dials the directory server.
	Connect(ctx context.Context) error

	// Bind authenticates using the method selected by the configuration.
	Bind(ctx context.Context) error

	// BaseDN returns the configured search base, discovering the RootDSE
	// defaultNamingContext when none was configured.
	BaseDN(ctx context.Context) (string, error)

	// Ping performs a cheap RootDSE probe to verify connectivity.
	Ping(ctx context.Context) error

	Close() error
}
