package ldap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog"
)

// client implements the Client interface over a single connection.
type client struct {
	config *ConnectionConfig
	conn   *ldap.Conn
	baseDN string
	logger zerolog.Logger
}

// NewClient creates a new LDAP client. The connection is established by
// Connect, not here.
func NewClient(config *ConnectionConfig, logger zerolog.Logger) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.URL == "" {
		return nil, fmt.Errorf("LDAP URL is required")
	}

	return &client{
		config: config,
		baseDN: config.BaseDN,
		logger: logger.With().Str("component", "ldap").Logger(),
	}, nil
}

// Connect dials the configured URL and negotiates StartTLS when requested.
func (c *client) Connect(ctx context.Context) error {
	start := time.Now()

	c.logger.Debug().
		Str("url", c.config.URL).
		Str("auth_method", c.config.GetAuthMethod().String()).
		Msg("dialing directory server")

	opts := []ldap.DialOpt{}
	if c.config.TLSConfig != nil {
		opts = append(opts, ldap.DialWithTLSConfig(c.config.TLSConfig))
	}

	conn, err := ldap.DialURL(c.config.URL, opts...)
	if err != nil {
		return WrapError("connect", err)
	}

	if c.config.Timeout > 0 {
		conn.SetTimeout(c.config.Timeout)
	}

	// StartTLS only applies to plain ldap:// connections.
	if c.config.UseTLS && !c.config.SkipTLS && strings.HasPrefix(c.config.URL, "ldap://") {
		if err := conn.StartTLS(c.config.TLSConfig); err != nil {
			conn.Close()
			return WrapError("starttls", err)
		}
	}

	c.conn = conn

	c.logger.Info().
		Dur("elapsed", time.Since(start)).
		Msg("connected to directory server")

	return nil
}

// Bind authenticates using the method selected by the configuration.
func (c *client) Bind(ctx context.Context) error {
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}

	method := c.config.GetAuthMethod()

	c.logger.Debug().
		Str("auth_method", method.String()).
		Str("username", c.config.Username).
		Msg("authenticating")

	var err error
	switch method {
	case AuthMethodSimpleBind:
		err = c.bindSimple()
	case AuthMethodNTLM:
		err = c.bindNTLM()
	case AuthMethodKerberos:
		err = c.bindKerberos(ctx)
	default:
		err = fmt.Errorf("unsupported authentication method: %s", method)
	}

	if err != nil {
		return WrapError("bind", err)
	}

	c.logger.Info().
		Str("auth_method", method.String()).
		Str("username", c.config.Username).
		Msg("authenticated")

	return nil
}

// bindSimple performs a simple bind; an empty password is an anonymous bind.
func (c *client) bindSimple() error {
	if c.config.Password == "" {
		return c.conn.UnauthenticatedBind(c.config.Username)
	}
	return c.conn.Bind(c.config.Username, c.config.Password)
}

// bindNTLM performs an NTLM bind with either a password or an NT hash.
func (c *client) bindNTLM() error {
	if c.config.Domain == "" {
		return fmt.Errorf("domain is required for NTLM authentication")
	}
	if c.config.NTHash != "" {
		return c.conn.NTLMBindWithHash(c.config.Domain, c.config.Username, c.config.NTHash)
	}
	return c.conn.NTLMBind(c.config.Domain, c.config.Username, c.config.Password)
}

// Search performs a single non-paged LDAP search.
func (c *client) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req == nil {
		return nil, fmt.Errorf("search request cannot be nil")
	}
	if c.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	ldapReq := ldap.NewSearchRequest(
		req.BaseDN,
		int(req.Scope),
		ldap.NeverDerefAliases,
		req.SizeLimit,
		int(req.TimeLimit.Seconds()),
		false,
		req.Filter,
		req.Attributes,
		req.Controls,
	)

	result, err := c.conn.Search(ldapReq)
	if err != nil {
		return nil, WrapError("search", err)
	}

	c.logger.Trace().
		Str("filter", req.Filter).
		Int("entries", len(result.Entries)).
		Msg("search completed")

	return &SearchResult{
		Entries: result.Entries,
		Total:   len(result.Entries),
	}, nil
}

// SearchWithPaging performs an LDAP search with the simple paged results
// control, accumulating all pages before returning.
func (c *client) SearchWithPaging(ctx context.Context, req *SearchRequest, pageSize uint32) (*SearchResult, error) {
	if req == nil {
		return nil, fmt.Errorf("search request cannot be nil")
	}
	if c.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	start := time.Now()
	pagingControl := ldap.NewControlPaging(pageSize)

	var allEntries []*ldap.Entry
	pageNum := 0

	for {
		pageNum++

		controls := append([]ldap.Control{pagingControl}, req.Controls...)

		ldapReq := ldap.NewSearchRequest(
			req.BaseDN,
			int(req.Scope),
			ldap.NeverDerefAliases,
			0, // No size limit when paging
			int(req.TimeLimit.Seconds()),
			false,
			req.Filter,
			req.Attributes,
			controls,
		)

		result, err := c.conn.Search(ldapReq)
		if err != nil {
			return nil, WrapError("paged_search", err)
		}

		allEntries = append(allEntries, result.Entries...)

		c.logger.Trace().
			Int("page", pageNum).
			Int("entries_in_page", len(result.Entries)).
			Int("total_entries", len(allEntries)).
			Msg("completed search page")

		pagingResult := ldap.FindControl(result.Controls, ldap.ControlTypePaging)
		responseControl, ok := pagingResult.(*ldap.ControlPaging)
		if !ok || len(responseControl.Cookie) == 0 {
			break
		}
		pagingControl.SetCookie(responseControl.Cookie)
	}

	c.logger.Debug().
		Str("filter", req.Filter).
		Int("pages", pageNum).
		Int("entries", len(allEntries)).
		Dur("elapsed", time.Since(start)).
		Msg("paged search completed")

	return &SearchResult{
		Entries: allEntries,
		Total:   len(allEntries),
	}, nil
}

// BaseDN returns the search base, discovering the RootDSE
// defaultNamingContext when no base was configured.
func (c *client) BaseDN(ctx context.Context) (string, error) {
	if c.baseDN != "" {
		return c.baseDN, nil
	}

	result, err := c.Search(ctx, &SearchRequest{
		BaseDN:     "",
		Scope:      ScopeBaseObject,
		Filter:     "(objectClass=*)",
		Attributes: []string{"defaultNamingContext"},
		SizeLimit:  1,
		TimeLimit:  5 * time.Second,
	})
	if err != nil {
		return "", WrapError("rootdse", err)
	}

	if len(result.Entries) == 0 {
		return "", fmt.Errorf("RootDSE returned no entries")
	}

	base := result.Entries[0].GetAttributeValue("defaultNamingContext")
	if base == "" {
		return "", fmt.Errorf("RootDSE has no defaultNamingContext")
	}

	c.baseDN = base
	c.logger.Debug().Str("base_dn", base).Msg("discovered default naming context")

	return base, nil
}

// Ping performs a RootDSE probe to verify connectivity.
func (c *client) Ping(ctx context.Context) error {
	_, err := c.Search(ctx, &SearchRequest{
		BaseDN:     "",
		Scope:      ScopeBaseObject,
		Filter:     "(objectClass=*)",
		Attributes: []string{"defaultNamingContext"},
		SizeLimit:  1,
		TimeLimit:  5 * time.Second,
	})
	return err
}

// Close closes the underlying connection.
func (c *client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
